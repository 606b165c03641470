package pdftext

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// glyphs lays out s one 5pt-wide glyph per rune starting at x
func glyphs(s string, x, y float64) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		out = append(out, pdf.Text{Font: "Helvetica", FontSize: 10, X: x, Y: y, W: 5, S: string(r)})
		x += 5
	}
	return out
}

func texts(words []tokens.Token) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

const tolerance = 1e-9

// ============================================================================
// Word Grouping Tests
// ============================================================================

func TestGroupWordsReadingOrder(t *testing.T) {
	var in []pdf.Text
	// Lower row first in the content stream
	in = append(in, glyphs("Total $9", 72, 680)...)
	in = append(in, glyphs("ACME Corp", 72, 700)...)
	in = append(in, glyphs("INV", 300, 701)...)

	words := groupWords(in, DefaultOptions())

	want := []string{"ACME", "Corp", "INV", "Total", "$9"}
	if got := texts(words); !reflect.DeepEqual(got, want) {
		t.Fatalf("words = %v, want %v", got, want)
	}

	acme := words[0]
	if acme.X0 != 72 || acme.X1 != 92 {
		t.Errorf("ACME x = %v..%v, want 72..92", acme.X0, acme.X1)
	}
	if math.Abs(acme.Y0-698) > tolerance || math.Abs(acme.Y1-708) > tolerance {
		t.Errorf("ACME y = %v..%v, want 698..708", acme.Y0, acme.Y1)
	}
	if acme.Vertical != tokens.Explicit {
		t.Errorf("Vertical = %v, want explicit", acme.Vertical)
	}
}

func TestGroupWordsGapSplitting(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want []string
	}{
		{"touching glyphs", 0, []string{"AB"}},
		{"gap at threshold", 2.5, []string{"AB"}},
		{"gap over threshold", 3, []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []pdf.Text{
				{FontSize: 10, X: 10, Y: 100, W: 5, S: "A"},
				{FontSize: 10, X: 15 + tt.gap, Y: 100, W: 5, S: "B"},
			}
			if got := texts(groupWords(in, DefaultOptions())); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("words = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupWordsUnsortedGlyphs(t *testing.T) {
	in := glyphs("INV-123", 100, 500)
	in[0], in[len(in)-1] = in[len(in)-1], in[0]

	words := groupWords(in, DefaultOptions())
	if got := texts(words); !reflect.DeepEqual(got, []string{"INV-123"}) {
		t.Errorf("words = %v, want [INV-123]", got)
	}
}

func TestGroupWordsBlankInput(t *testing.T) {
	if words := groupWords(nil, DefaultOptions()); len(words) != 0 {
		t.Errorf("groupWords(nil) = %v", words)
	}
	blank := []pdf.Text{{FontSize: 10, X: 1, Y: 1, W: 3, S: " "}, {FontSize: 10, X: 4, Y: 1, W: 3, S: "\t"}}
	if words := groupWords(blank, DefaultOptions()); len(words) != 0 {
		t.Errorf("groupWords(blank) = %v", words)
	}
}

func TestGroupWordsZeroFontSize(t *testing.T) {
	in := []pdf.Text{{X: 0, Y: 50, W: 4, S: "x"}}
	words := groupWords(in, DefaultOptions())
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Y1-words[0].Y0 != 10 {
		t.Errorf("height = %v, want fallback font size 10", words[0].Y1-words[0].Y0)
	}
}

func TestGroupRows(t *testing.T) {
	in := []pdf.Text{
		{Y: 100, S: "a"},
		{Y: 300, S: "b"},
		{Y: 101.5, S: "c"},
		{Y: 298, S: "d"},
	}
	rows := groupRows(in, 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	var top []string
	for _, r := range rows[0] {
		top = append(top, r.S)
	}
	if strings.Join(top, "") != "bd" {
		t.Errorf("top row = %v, want [b d]", top)
	}
}

func TestGroupRowsDriftingBaseline(t *testing.T) {
	in := []pdf.Text{
		{Y: 704.5, S: "d"},
		{Y: 700, S: "a"},
		{Y: 688, S: "x"},
		{Y: 703, S: "c"},
		{Y: 706, S: "e"},
		{Y: 701.5, S: "b"},
	}
	rows := groupRows(in, 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != 5 || len(rows[1]) != 1 || rows[1][0].S != "x" {
		t.Errorf("rows = %+v, want the drifting line then x", rows)
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	if rows := groupRows(nil, 2); len(rows) != 0 {
		t.Errorf("groupRows(nil) = %v, want no rows", rows)
	}
}

func TestGroupWordsDriftingBaseline(t *testing.T) {
	in := glyphs("Total", 72, 700)
	for i := range in {
		in[i].Y += 0.8 * float64(i)
	}

	words := groupWords(in, DefaultOptions())
	if got := texts(words); !reflect.DeepEqual(got, []string{"Total"}) {
		t.Errorf("words = %v, want [Total]", got)
	}
}

// ============================================================================
// MediaBox Tests
// ============================================================================

func TestRect(t *testing.T) {
	r := rect{llx: 10, lly: 20, urx: 622, ury: 812}
	if r.width() != 612 || r.height() != 792 {
		t.Errorf("rect size = %vx%v, want 612x792", r.width(), r.height())
	}
}

func TestMediaBoxFallback(t *testing.T) {
	r := mediaBox(pdf.Page{})
	if r.width() != Letter[0] || r.height() != Letter[1] {
		t.Errorf("fallback = %vx%v, want letter", r.width(), r.height())
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract("testdata/does-not-exist.pdf", DefaultOptions()); err == nil {
		t.Error("Extract() error = nil for missing file")
	}
	if _, err := ExtractReader(strings.NewReader("not a pdf"), 9, DefaultOptions()); err == nil {
		t.Error("ExtractReader() error = nil for garbage input")
	}
}
