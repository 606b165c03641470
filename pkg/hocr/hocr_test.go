package hocr

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title>invoice</title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name="ocr-system" content="tesseract 5.3.0"/>
  <meta name="ocr-capabilities" content="ocr_page ocr_carea ocr_par ocr_line ocrx_word"/>
 </head>
 <body>
  <div class="ocr_page" id="page_1" title='image "invoice.png"; bbox 0 0 1700 2200; ppageno 0'>
   <div class="ocr_carea" id="block_1_1" title="bbox 100 100 600 160">
    <p class="ocr_par" id="par_1_1" title="bbox 100 100 600 160">
     <span class="ocr_line" id="line_1_1" title="bbox 100 100 600 130; baseline 0 -5">
      <span class="ocrx_word" id="word_1_1" title="bbox 100 100 260 130; x_wconf 96">Invoice</span>
      <span class="ocrx_word" id="word_1_2" title="bbox 280 100 420 130; x_wconf 91"><strong>INV-123</strong></span>
     </span>
     <span class="ocr_header" id="line_1_2" title="bbox 100 140 300 160">
      <span class="ocrx_word" id="word_1_3" title="bbox 100 140 300 160; x_wconf 88">Total</span>
      <span class="ocrx_word" id="word_1_4" title="bbox 310 140 330 160; x_wconf 10"> </span>
     </span>
    </p>
   </div>
   <span class="ocrx_word" id="word_1_5" title="bbox 100 300 200 330; x_wconf 80">loose</span>
  </div>
  <div class="ocr_page" id="page_2" title="bbox 0 0 850 1100; ppageno 1">
   <span class="ocr_line" id="line_2_1" title="bbox 10 10 100 30">
    <span class="ocrx_word" id="word_2_1" title="bbox 10 10 100 30">$93.50</span>
    <span class="ocrx_word" id="word_2_2">nobox</span>
   </span>
  </div>
 </body>
</html>`

// ============================================================================
// Parse Tests
// ============================================================================

func TestParseHOCR(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseHOCR() error = %v", err)
	}

	if doc.Title != "invoice" {
		t.Errorf("Title = %q, want invoice", doc.Title)
	}
	if doc.Language != "en" {
		t.Errorf("Language = %q, want en", doc.Language)
	}
	if doc.Metadata["ocr-system"] != "tesseract 5.3.0" {
		t.Errorf("ocr-system = %q", doc.Metadata["ocr-system"])
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(doc.Pages))
	}

	p1 := doc.Pages[0]
	if p1.ID != "page_1" || p1.ImageName != "invoice.png" {
		t.Errorf("page 1 = %+v", p1)
	}
	if p1.BBox != NewBoundingBox(0, 0, 1700, 2200) {
		t.Errorf("page 1 bbox = %+v", p1.BBox)
	}
	if len(p1.Lines) != 3 {
		t.Fatalf("page 1 has %d lines, want 3", len(p1.Lines))
	}
	if p1.Lines[0].Baseline != "0 -5" {
		t.Errorf("baseline = %q", p1.Lines[0].Baseline)
	}
	if p1.Lines[2].ID != "" {
		t.Errorf("loose line ID = %q, want empty", p1.Lines[2].ID)
	}

	var got []string
	for _, w := range p1.Words() {
		got = append(got, w.Text)
	}
	want := []string{"Invoice", "INV-123", "Total", "loose"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("page 1 words = %v, want %v", got, want)
	}
	if c := p1.Lines[0].Words[0].Confidence; c != 96 {
		t.Errorf("confidence = %v, want 96", c)
	}

	if words := doc.Pages[1].Words(); len(words) != 1 || words[0].Text != "$93.50" {
		t.Errorf("page 2 words = %+v, want only $93.50", words)
	}
	if doc.Pages[1].PageNumber != 1 {
		t.Errorf("page 2 number = %d, want 1", doc.Pages[1].PageNumber)
	}
}

func TestParseHOCRNoPages(t *testing.T) {
	if _, err := ParseHOCR([]byte("<html><body><p>nothing</p></body></html>")); err == nil {
		t.Error("ParseHOCR() error = nil, want error for document without pages")
	}
}

func TestParseHOCRLatin1(t *testing.T) {
	src := `<html><head><meta http-equiv="Content-Type" content="text/html; charset=iso-8859-1"></head><body>` +
		`<div class="ocr_page" title="bbox 0 0 100 100"><span class="ocrx_word" title="bbox 1 1 20 10">Zürich</span></div></body></html>`
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(src))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	doc, err := ParseHOCR(data)
	if err != nil {
		t.Fatalf("ParseHOCR() error = %v", err)
	}
	if got := doc.Pages[0].Words()[0].Text; got != "Zürich" {
		t.Errorf("word = %q, want Zürich", got)
	}
}

func TestParseTitle(t *testing.T) {
	props := ParseTitle("bbox 100 200 300 400; x_wconf 95;  ; image \"a.png\"")
	if !reflect.DeepEqual(props["bbox"], []string{"100", "200", "300", "400"}) {
		t.Errorf("bbox = %v", props["bbox"])
	}
	if !reflect.DeepEqual(props["x_wconf"], []string{"95"}) {
		t.Errorf("x_wconf = %v", props["x_wconf"])
	}
	if len(props) != 3 {
		t.Errorf("got %d properties, want 3", len(props))
	}
}

func TestParseBoundingBoxFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  *BoundingBox
	}{
		{"bbox 1 2 3 4", &BoundingBox{1, 2, 3, 4}},
		{"x_wconf 9; bbox 10.5 20 30 40", &BoundingBox{10.5, 20, 30, 40}},
		{"bbox 1 2 3", nil},
		{"bbox a b c d", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := ParseBoundingBoxFromTitle(tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseBoundingBoxFromTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Token Conversion Tests
// ============================================================================

func TestToPages(t *testing.T) {
	pages, err := ParsePages([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParsePages() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	p := pages[0]
	if p.Width != 1700 || p.Height != 2200 {
		t.Errorf("page size = %vx%v, want 1700x2200", p.Width, p.Height)
	}
	if len(p.Words) != 4 {
		t.Fatalf("got %d tokens, want 4", len(p.Words))
	}

	inv := p.Words[1]
	if inv.Text != "INV-123" || inv.X0 != 280 || inv.X1 != 420 || inv.Top != 100 || inv.Bottom != 130 {
		t.Errorf("token = %+v", inv)
	}
	if inv.Y1 != 2100 || inv.Y0 != 2070 {
		t.Errorf("resolved y0/y1 = %v/%v, want 2070/2100", inv.Y0, inv.Y1)
	}
}

func TestToPagesOffsetAndMissingBBox(t *testing.T) {
	doc := HOCR{Pages: []Page{
		{
			BBox: NewBoundingBox(50, 50, 250, 150),
			Lines: []Line{{Words: []Word{
				{Text: "A1", BBox: NewBoundingBox(60, 70, 80, 90)},
			}}},
		},
		{
			Lines: []Line{{Words: []Word{
				{Text: "B2", BBox: NewBoundingBox(10, 10, 40, 20)},
				{Text: "C3", BBox: NewBoundingBox(100, 200, 140, 220)},
			}}},
		},
	}}

	pages := ToPages(doc)

	a := pages[0].Words[0]
	if a.X0 != 10 || a.X1 != 30 || a.Top != 20 || a.Bottom != 40 {
		t.Errorf("offset token = %+v", a)
	}
	if pages[0].Width != 200 || pages[0].Height != 100 {
		t.Errorf("page 1 size = %vx%v, want 200x100", pages[0].Width, pages[0].Height)
	}
	if pages[1].Width != 140 || pages[1].Height != 220 {
		t.Errorf("page 2 size = %vx%v, want 140x220", pages[1].Width, pages[1].Height)
	}
}

func TestExtractHOCRText(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseHOCR() error = %v", err)
	}

	got := ExtractHOCRText(&doc)
	want := "Invoice INV-123\nTotal\nloose\n\n$93.50\n"
	if got != want {
		t.Errorf("ExtractHOCRText() = %q, want %q", got, want)
	}
	if strings.Contains(got, "nobox") {
		t.Error("text includes a word without a bbox")
	}
}
