// Package config loads the fieldbox YAML configuration.
//
// Every section starts from the library defaults, so a config file only
// needs the keys it changes. Endpoints and credentials can also come from
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gardar/fieldbox/pkg/extract"
	"github.com/gardar/fieldbox/pkg/fieldbox"
	"github.com/gardar/fieldbox/pkg/gdocai"
	"github.com/gardar/fieldbox/pkg/highlight"
	"github.com/gardar/fieldbox/pkg/pdftext"
)

// Config is the root of the YAML document
type Config struct {
	Resolve   ResolveConfig    `yaml:"resolve"`
	DocAI     gdocai.Config    `yaml:"docai"`
	Ollama    extract.Config   `yaml:"ollama"`
	Highlight highlight.Config `yaml:"highlight"`
	PDF       pdftext.Options  `yaml:"pdf"`
}

// ResolveConfig configures field resolution
type ResolveConfig struct {
	Thresholds             fieldbox.Thresholds `yaml:"thresholds"`
	Fields                 []fieldbox.Field    `yaml:"fields"`
	Skip                   []string            `yaml:"skip"`
	Address                []string            `yaml:"address"`
	LabelKeywords          []string            `yaml:"label_keywords"`
	ValueTokens            map[string][]string `yaml:"value_tokens"`
	DisableAddressFallback bool                `yaml:"disable_address_fallback"`
	Concurrency            int                 `yaml:"concurrency"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	opts := fieldbox.DefaultOptions()
	valueTokens := make(map[string][]string, len(fieldbox.DefaultValueTokens))
	for field, words := range fieldbox.DefaultValueTokens {
		valueTokens[field] = append([]string(nil), words...)
	}

	return Config{
		Resolve: ResolveConfig{
			Thresholds:    opts.Thresholds,
			Fields:        opts.Catalog.Fields,
			Skip:          opts.Catalog.Skip,
			Address:       opts.Catalog.Address,
			LabelKeywords: append([]string(nil), fieldbox.DefaultLabelKeywords...),
			ValueTokens:   valueTokens,
			Concurrency:   opts.Concurrency,
		},
		DocAI: gdocai.Config{
			Location:   "us",
			MaxRetries: 3,
		},
		Ollama:    extract.DefaultConfig(),
		Highlight: highlight.DefaultConfig(),
		PDF:       pdftext.DefaultOptions(),
	}
}

// Validate reports values the resolver or renderers cannot work with.
// Document AI settings are checked when a processor is actually called.
func (c Config) Validate() error {
	th := c.Resolve.Thresholds
	if th.LabelPenalty < 0 || th.HorizontalTolerance < 0 || th.VerticalGap < 0 || th.PadX < 0 || th.PadY < 0 || th.MinPartLength < 0 {
		return errors.New("config: thresholds must not be negative")
	}
	if c.Resolve.Concurrency < 0 {
		return errors.New("config: concurrency must be >= 0")
	}
	if len(c.Resolve.Fields) == 0 {
		return errors.New("config: resolve.fields is empty")
	}
	seen := make(map[string]bool, len(c.Resolve.Fields))
	for _, f := range c.Resolve.Fields {
		if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Output) == "" {
			return fmt.Errorf("config: field %q needs a name and an output", f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("config: field %q listed twice", f.Name)
		}
		seen[f.Name] = true
	}
	if c.Highlight.FillAlpha < 0 || c.Highlight.FillAlpha > 1 {
		return fmt.Errorf("config: highlight.fill_alpha %v outside [0, 1]", c.Highlight.FillAlpha)
	}
	if c.PDF.RowTolerance <= 0 || c.PDF.WordGapFactor <= 0 {
		return errors.New("config: pdf.row_tolerance and pdf.word_gap_factor must be > 0")
	}
	return nil
}

// Options converts the resolve section into resolver options
func (c Config) Options(logger *slog.Logger) fieldbox.Options {
	r := c.Resolve
	return fieldbox.Options{
		Thresholds: r.Thresholds,
		Catalog: fieldbox.Catalog{
			Fields:  r.Fields,
			Skip:    r.Skip,
			Address: r.Address,
		},
		Labels:                 fieldbox.NewLabelClassifier(r.LabelKeywords, r.ValueTokens),
		DisableAddressFallback: r.DisableAddressFallback,
		Concurrency:            r.Concurrency,
		Logger:                 logger,
	}
}
