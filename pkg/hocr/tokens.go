package hocr

import (
	"github.com/gardar/fieldbox/pkg/tokens"
)

// ToPages converts a parsed hOCR document into token pages.
// hOCR coordinates are pixels measured down from the top-left corner, so
// every word becomes a top/bottom token relative to its page's bbox origin.
// A page without a bbox takes its size from the furthest word edge.
func ToPages(doc HOCR) []tokens.Page {
	pages := make([]tokens.Page, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		words := p.Words()
		origin := p.BBox

		width, height := origin.Width(), origin.Height()
		if origin.IsZero() {
			for _, w := range words {
				width = max(width, w.BBox.X2)
				height = max(height, w.BBox.Y2)
			}
		}

		toks := make([]tokens.Token, 0, len(words))
		for _, w := range words {
			toks = append(toks, tokens.NewTopBottom(
				w.Text,
				w.BBox.X1-origin.X1,
				w.BBox.X2-origin.X1,
				w.BBox.Y1-origin.Y1,
				w.BBox.Y2-origin.Y1,
			))
		}
		pages = append(pages, tokens.NewPage(toks, width, height))
	}
	return pages
}

// ParsePages parses hOCR data straight into token pages
func ParsePages(data []byte) ([]tokens.Page, error) {
	doc, err := ParseHOCR(data)
	if err != nil {
		return nil, err
	}
	return ToPages(doc), nil
}
