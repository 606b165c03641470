package pdftext

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// word accumulates the glyphs of one word
type word struct {
	text     strings.Builder
	x0, x1   float64
	minY     float64
	maxY     float64
	fontSize float64
}

func (w *word) add(t pdf.Text) {
	if w.text.Len() == 0 {
		w.x0, w.x1, w.minY, w.maxY = t.X, t.X+t.W, t.Y, t.Y
	}
	w.text.WriteString(t.S)
	w.x1 = math.Max(w.x1, t.X+t.W)
	w.minY = math.Min(w.minY, t.Y)
	w.maxY = math.Max(w.maxY, t.Y)
	w.fontSize = math.Max(w.fontSize, t.FontSize)
}

func (w *word) token(opts Options) tokens.Token {
	fs := w.fontSize
	if fs <= 0 {
		fs = 10
	}
	return tokens.NewExplicit(
		w.text.String(),
		w.x0,
		w.x1,
		w.minY-opts.Descent*fs,
		w.maxY+opts.Ascent*fs,
	)
}

// groupWords turns glyphs into words in reading order: rows top to bottom,
// words left to right within a row
func groupWords(texts []pdf.Text, opts Options) []tokens.Token {
	var out []tokens.Token
	for _, row := range groupRows(texts, opts.RowTolerance) {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

		var cur *word
		flush := func() {
			if cur != nil && strings.TrimSpace(cur.text.String()) != "" {
				out = append(out, cur.token(opts))
			}
			cur = nil
		}

		for _, t := range row {
			if isBlank(t.S) {
				flush()
				continue
			}
			if cur != nil && t.X-cur.x1 > wordGap(t, cur, opts) {
				flush()
			}
			if cur == nil {
				cur = &word{}
			}
			cur.add(t)
		}
		flush()
	}
	return out
}

// groupRows buckets glyphs into rows from the top of the page down. Glyphs
// are swept in descending baseline order and a glyph within tol of the
// previous one stays on its row, so a baseline that drifts gradually across
// a line is kept together.
func groupRows(texts []pdf.Text, tol float64) [][]pdf.Text {
	if len(texts) == 0 {
		return nil
	}

	sorted := append([]pdf.Text(nil), texts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdf.Text
	row := []pdf.Text{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Y-sorted[i].Y > tol {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, sorted[i])
	}
	return append(rows, row)
}

func wordGap(t pdf.Text, cur *word, opts Options) float64 {
	fs := math.Max(t.FontSize, cur.fontSize)
	if fs <= 0 {
		return 3.0
	}
	return opts.WordGapFactor * fs
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
