package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file
const (
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvOllamaHost  = "OLLAMA_HOST"
	EnvConcurrency = "FIELDBOX_CONCURRENCY"
)

// Load reads the YAML file at path over the defaults, applies the process
// environment and validates the result. An empty path loads the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML over the defaults. Unknown keys are rejected so typos
// do not silently fall back to a default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays KEY=VALUE pairs in the form returned by os.Environ.
// A credentials file set in the config wins over the environment.
func (c *Config) ApplyEnv(env []string) error {
	for _, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case EnvCredentials:
			if c.DocAI.CredentialsFile == "" {
				c.DocAI.CredentialsFile = value
			}
		case EnvOllamaHost:
			c.Ollama.ServerURL = ollamaURL(value)
		case EnvConcurrency:
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("config: %s=%q is not an integer", EnvConcurrency, value)
			}
			c.Resolve.Concurrency = n
		}
	}
	return nil
}

// ollamaURL accepts OLLAMA_HOST in the host:port form the Ollama CLI uses
func ollamaURL(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}
