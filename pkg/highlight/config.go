package highlight

import (
	"log/slog"
)

// Config holds user options for rendering field highlights
type Config struct {
	Debug      bool         `yaml:"debug"`       // Draw the word layer visibly in red
	Force      bool         `yaml:"force"`       // Overlay even if a highlight layer already exists
	LayerName  string       `yaml:"layer_name"`  // Base name of the highlight layer (page number will be appended)
	WordsLayer string       `yaml:"words_layer"` // Base name of the word layer, empty to skip it
	Labels     bool         `yaml:"labels"`      // Print the field name above each box
	Color      RGB          `yaml:"color"`       // Box stroke and label color
	FillAlpha  float64      `yaml:"fill_alpha"`  // Box fill opacity, 0 for outline only
	LineWidth  float64      `yaml:"line_width"`  // Box stroke width in points
	Logger     *slog.Logger `yaml:"-"`           // Warnings sink, nil discards
	Font       FontConfig   `yaml:"font"`
}

// RGB is an 8-bit color
type RGB struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		LayerName:  "Field Boxes", // Will be formatted as "Field Boxes - Page X" in the final PDF
		WordsLayer: "",
		Labels:     true,
		Color:      RGB{R: 220, G: 40, B: 40},
		FillAlpha:  0.15,
		LineWidth:  1,
		Font:       DefaultFont,
	}
}

// FontConfig contains font settings for labels and the word layer
type FontConfig struct {
	Name        string  `yaml:"name"`         // Font name (e.g., "Helvetica")
	Style       string  `yaml:"style"`        // Font style ("", "B", "I", "BI")
	Size        float64 `yaml:"size"`         // Default font size
	AscentRatio float64 `yaml:"ascent_ratio"` // Vertical positioning ratio
}

// DefaultFont is Helvetica, which every PDF viewer ships
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        8,
	AscentRatio: 0.718,
}
