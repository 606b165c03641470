// Package extract pulls invoice field values out of document text with a
// language model and cleans them up for box resolution.
//
// Model output is rarely usable as is: it arrives wrapped in markdown
// fences, keeps the printed labels in front of values, splits addresses into
// arrays and rewrites dates. Clean undoes those habits using the document
// text as the reference.
//
// Key Types:
//
// - FieldExtractor: Interface implemented by every extraction backend
// - LLMExtractor: Extracts fields through a langchaingo model, Ollama by default
// - ParseError: Model output that could not be decoded as JSON
//
// Main Functions:
//
// - NewOllama: Creates an LLMExtractor backed by a local Ollama server
// - Parse: Decodes model output into a field map
// - Clean: Normalizes extracted values against the document text
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Fields maps internal field names to extracted values
type Fields = map[string]interface{}

// Request is the input for one extraction
type Request struct {
	Text         string // Full document text
	Instructions string // Additional instructions appended to the system prompt
}

// FieldExtractor extracts field values from document text.
// It returns the cleaned fields and the raw model output.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req Request) (Fields, []byte, error)
}

// ErrEmptyResponse is returned when the model produced no choices
var ErrEmptyResponse = errors.New("model returned no content")

// ParseError reports model output that is not a JSON object
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config holds the model settings
type Config struct {
	Model         string        `yaml:"model"`
	ServerURL     string        `yaml:"server_url"`
	NumCtx        int           `yaml:"num_ctx"`
	Temperature   float64       `yaml:"temperature"`
	MaxTokens     int           `yaml:"max_tokens"`
	MaxInputChars int           `yaml:"max_input_chars"`
	MaxRetries    uint64        `yaml:"max_retries"`
	RetryInterval time.Duration `yaml:"retry_interval"`

	// KeepAlive is how long the server keeps the model loaded after a
	// request, in Ollama duration syntax. Empty uses the server default.
	KeepAlive string `yaml:"keep_alive"`
}

// DefaultConfig returns the settings the prompt was tuned with
func DefaultConfig() Config {
	return Config{
		Model:         "qwen2.5:3b",
		NumCtx:        4096,
		Temperature:   0.1,
		MaxTokens:     1000,
		MaxInputChars: 10000,
		MaxRetries:    2,
		RetryInterval: 2 * time.Second,
		KeepAlive:     "5m",
	}
}
