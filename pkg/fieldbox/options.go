package fieldbox

import (
	"io"
	"log/slog"
)

// Thresholds holds the empirically chosen constants used by matching and
// projection. They are kept overridable rather than re-derived.
type Thresholds struct {
	LabelPenalty        float64 `yaml:"label_penalty"`        // Score penalty per label token inside a run
	HorizontalTolerance float64 `yaml:"horizontal_tolerance"` // Max |x0 - median x0| for address candidates
	VerticalGap         float64 `yaml:"vertical_gap"`         // Top-to-top gap that starts a new address cluster
	PadX                float64 `yaml:"pad_x"`                // Horizontal padding as a fraction of box width
	PadY                float64 `yaml:"pad_y"`                // Vertical padding as a fraction of box height
	MinPartLength       int     `yaml:"min_part_length"`      // Address parts and words at or below this length are noise
}

// DefaultThresholds returns the thresholds the matcher was tuned with
func DefaultThresholds() Thresholds {
	return Thresholds{
		LabelPenalty:        0.5,
		HorizontalTolerance: 150,
		VerticalGap:         50,
		PadX:                0.05,
		PadY:                0.10,
		MinPartLength:       2,
	}
}

// Options configures a Resolver
type Options struct {
	Thresholds Thresholds
	Catalog    Catalog
	Labels     *LabelClassifier

	// DisableAddressFallback stops an address field from falling back to
	// value matching on a page where no address cluster was found. By default
	// the fallback runs before moving to the next page.
	DisableAddressFallback bool

	// Concurrency is the number of fields resolved in parallel. Values below
	// 2 resolve sequentially.
	Concurrency int

	// Logger receives diagnostic events. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options matching the default invoice catalog
func DefaultOptions() Options {
	return Options{
		Thresholds:  DefaultThresholds(),
		Catalog:     DefaultCatalog(),
		Labels:      DefaultLabelClassifier(),
		Concurrency: 1,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
