package gdocai

import (
	"math"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// PagesFromProto converts the tokens of every Document AI page into a
// token page. Document AI measures from the top-left corner, so tokens are
// built in the top/bottom convention, scaled by the page dimension.
func PagesFromProto(doc *documentaipb.Document) []tokens.Page {
	if doc == nil {
		return nil
	}

	pages := make([]tokens.Page, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		var width, height float64
		if dim := page.GetDimension(); dim != nil {
			width, height = float64(dim.Width), float64(dim.Height)
		}

		words := make([]tokens.Token, 0, len(page.Tokens))
		for _, token := range page.Tokens {
			text := strings.TrimSpace(textFromLayout(token.Layout, doc.Text))
			if text == "" {
				continue
			}
			x0, top, x1, bottom, ok := layoutBounds(token.Layout, width, height)
			if !ok {
				continue
			}
			words = append(words, tokens.NewTopBottom(text, x0, x1, top, bottom))
		}
		pages = append(pages, tokens.NewPage(words, width, height))
	}
	return pages
}

// layoutBounds returns the axis-aligned bounds of a layout's bounding poly.
// Normalized vertices are scaled by the page size; pixel vertices are used
// as they are.
func layoutBounds(layout *documentaipb.Document_Page_Layout, width, height float64) (x0, y0, x1, y1 float64, ok bool) {
	poly := layout.GetBoundingPoly()
	if poly == nil {
		return 0, 0, 0, 0, false
	}

	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		x0, x1 = math.Min(x0, x), math.Max(x1, x)
		y0, y1 = math.Min(y0, y), math.Max(y1, y)
	}

	switch {
	case len(poly.NormalizedVertices) > 0:
		for _, v := range poly.NormalizedVertices {
			extend(float64(v.X)*width, float64(v.Y)*height)
		}
	case len(poly.Vertices) > 0:
		for _, v := range poly.Vertices {
			extend(float64(v.X), float64(v.Y))
		}
	default:
		return 0, 0, 0, 0, false
	}

	return x0, y0, x1, y1, true
}
