package fieldbox

import (
	"math"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// Box is a highlight rectangle in normalized, top-left-origin page space
type Box struct {
	Field      string  `json:"field"`
	Page       int     `json:"page"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Normalized bool    `json:"normalized"`
}

// Project merges the given words into one padded box normalized by the page
// size. Vertical bounds come from each word's bottom-up y0/y1, derived from
// top/bottom when the word was not supplied with them, so the result is the
// same whichever convention the extractor used. It reports false for an
// empty word set.
func Project(words []tokens.Token, width, height float64, th Thresholds) (Box, bool) {
	if len(words) == 0 {
		return Box{}, false
	}
	width = math.Max(width, 1)
	height = math.Max(height, 1)

	x0, x1 := math.Inf(1), math.Inf(-1)
	y0, y1 := math.Inf(1), math.Inf(-1)
	for _, w := range words {
		x0 = math.Min(x0, w.X0)
		x1 = math.Max(x1, w.X1)
		wy0, wy1 := w.YBounds(height)
		y0 = math.Min(y0, wy0)
		y1 = math.Max(y1, wy1)
	}

	padX := (x1 - x0) * th.PadX
	padY := (y1 - y0) * th.PadY

	x0 = clamp(x0-padX, 0, width)
	x1 = clamp(x1+padX, x0, width)
	y0 = clamp(y0-padY, 0, height)
	y1 = clamp(y1+padY, y0, height)

	// top-left origin for canvas drawing
	yCanvas := height - y1

	return Box{
		X:          clamp(x0/width, 0, 1),
		Y:          clamp(yCanvas/height, 0, 1),
		Width:      clamp((x1-x0)/width, 0, 1),
		Height:     clamp((y1-y0)/height, 0, 1),
		Normalized: true,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
