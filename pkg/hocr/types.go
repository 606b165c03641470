package hocr

// HOCR represents a parsed hOCR document
type HOCR struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities and friends
	Pages    []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // ppageno property, 0 when absent
	ImageName  string      // Source image filename
	BBox       BoundingBox // Page coordinates in pixels
	Lines      []Line      // Lines in document order
}

// Words returns every word on the page in reading order
func (p Page) Words() []Word {
	var words []Word
	for _, l := range p.Lines {
		words = append(words, l.Words...)
	}
	return words
}

// Line represents a line of text
// Corresponds to hOCR elements with class: 'ocr_line', 'ocr_header',
// 'ocr_caption' or 'ocr_textfloat'
type Line struct {
	ID       string      // Unique identifier, empty for loose words
	BBox     BoundingBox // Line coordinates
	Baseline string      // Baseline information
	Words    []Word      // Words in this line
}

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string      // Unique identifier
	Text       string      // The actual text content
	BBox       BoundingBox // Word coordinates
	Confidence float64     // Recognition confidence (0-100)
}

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from the x1, y1, x2, y2 values of a
// 'bbox' property, top-left corner first
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent of the box
func (b BoundingBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box
func (b BoundingBox) Height() float64 {
	return b.Y2 - b.Y1
}

// IsZero reports whether no bbox was parsed
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}
