package tokens

import (
	"strings"
)

// Vertical identifies the vertical convention a token was supplied in
type Vertical uint8

const (
	// TopBottom tokens carry top/bottom measured down from the page's top edge.
	TopBottom Vertical = iota
	// Explicit tokens carry y0/y1 measured up from the page's bottom edge.
	Explicit
)

// String returns the tag name used in logs and JSON dumps
func (v Vertical) String() string {
	if v == Explicit {
		return "explicit"
	}
	return "top_bottom"
}

// Token is a single word with page-relative coordinates.
// After NewPage both vertical forms are populated; Vertical records which
// one the extractor actually supplied.
type Token struct {
	Text     string   `json:"text"`
	X0       float64  `json:"x0"`
	X1       float64  `json:"x1"`
	Top      float64  `json:"top"`
	Bottom   float64  `json:"bottom"`
	Y0       float64  `json:"y0"`
	Y1       float64  `json:"y1"`
	Vertical Vertical `json:"-"`
}

// NewTopBottom creates a token in the top-down convention (pdfplumber, hOCR)
func NewTopBottom(text string, x0, x1, top, bottom float64) Token {
	return Token{Text: text, X0: x0, X1: x1, Top: top, Bottom: bottom, Vertical: TopBottom}
}

// NewExplicit creates a token whose y0/y1 are measured from the bottom edge
func NewExplicit(text string, x0, x1, y0, y1 float64) Token {
	return Token{Text: text, X0: x0, X1: x1, Y0: y0, Y1: y1, Vertical: Explicit}
}

// resolve fills in whichever vertical form the extractor did not supply.
// Explicit tokens keep a top/bottom pair that was reported alongside them.
func (t Token) resolve(height float64) Token {
	if t.Vertical == Explicit {
		if t.Top == 0 && t.Bottom == 0 {
			t.Top = t.TopEdge(height)
			t.Bottom = height - t.Y0
		}
		return t
	}
	t.Y0, t.Y1 = t.YBounds(height)
	return t
}

// YBounds returns the bottom-up y0/y1 of the token on a page of the given
// height, deriving them from top/bottom unless the token is Explicit
func (t Token) YBounds(height float64) (y0, y1 float64) {
	if t.Vertical == Explicit {
		return t.Y0, t.Y1
	}
	return height - t.Bottom, height - t.Top
}

// TopEdge returns the top-down distance of the token's upper edge
func (t Token) TopEdge(height float64) float64 {
	if t.Vertical == Explicit && t.Top == 0 && t.Bottom == 0 {
		return height - t.Y1
	}
	return t.Top
}

// Width returns the horizontal extent of the token
func (t Token) Width() float64 {
	return t.X1 - t.X0
}

// Page is one page of word tokens in natural reading order
type Page struct {
	Words  []Token `json:"words"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewPage creates a page from extracted words.
// Width and height are floored to 1 so normalisation never divides by zero,
// and every token's vertical geometry is resolved against the page height.
func NewPage(words []Token, width, height float64) Page {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	resolved := make([]Token, len(words))
	for i, w := range words {
		resolved[i] = w.resolve(height)
	}

	return Page{Words: resolved, Width: width, Height: height}
}

// Resolved returns the page as NewPage would build it, so pages assembled
// as literals get the same geometry as extracted ones
func (p Page) Resolved() Page {
	return NewPage(p.Words, p.Width, p.Height)
}

// Text joins the page's words with single spaces
func (p Page) Text() string {
	parts := make([]string, 0, len(p.Words))
	for _, w := range p.Words {
		if s := strings.TrimSpace(w.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// WordsPerPage returns the word count of every page, in page order
func WordsPerPage(pages []Page) []int {
	counts := make([]int, len(pages))
	for i, p := range pages {
		counts[i] = len(p.Words)
	}
	return counts
}

// DocumentText joins the text of all pages, separated by newlines
func DocumentText(pages []Page) string {
	var builder strings.Builder
	for i, p := range pages {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(p.Text())
	}
	return builder.String()
}
