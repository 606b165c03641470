package tokens

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromMap builds a token from a loosely typed word record such as the ones
// pdfplumber's extract_words produces. Missing or malformed coordinates
// default to 0 instead of failing. The record is treated as Explicit only
// when both y0 and y1 are present.
func FromMap(word map[string]any) Token {
	t := Token{
		Text:   textValue(word["text"]),
		X0:     numberValue(word["x0"]),
		X1:     numberValue(word["x1"]),
		Top:    numberValue(word["top"]),
		Bottom: numberValue(word["bottom"]),
	}

	_, hasY0 := word["y0"]
	_, hasY1 := word["y1"]
	if hasY0 && hasY1 {
		t.Y0 = numberValue(word["y0"])
		t.Y1 = numberValue(word["y1"])
		t.Vertical = Explicit
	}
	return t
}

// rawPage mirrors the JSON layout of one extracted page
type rawPage struct {
	Words  []map[string]any `json:"words"`
	Width  any              `json:"width"`
	Height any              `json:"height"`
}

// DecodePages reads a JSON array of pages, each with "words", "width" and
// "height", and returns them with geometry resolved.
func DecodePages(r io.Reader) ([]Page, error) {
	var raw []rawPage
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}

	pages := make([]Page, 0, len(raw))
	for _, rp := range raw {
		words := make([]Token, 0, len(rp.Words))
		for _, w := range rp.Words {
			if w == nil {
				continue
			}
			words = append(words, FromMap(w))
		}
		pages = append(pages, NewPage(words, numberValue(rp.Width), numberValue(rp.Height)))
	}
	return pages, nil
}

func textValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

func numberValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
