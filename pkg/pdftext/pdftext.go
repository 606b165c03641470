// Package pdftext extracts positioned words from text-based PDFs.
//
// Glyphs are read with github.com/ledongthuc/pdf, grouped into rows by
// baseline and split into words on spaces and horizontal gaps. Words are
// emitted as explicit y0/y1 tokens since PDF user space grows upwards from
// the bottom-left corner of the MediaBox.
//
// Key Types:
//
// - Options: Row tolerance and word gap used when grouping glyphs
//
// Main Functions:
//
// - Extract: Reads a PDF file into token pages
// - ExtractReader: Reads a PDF from an io.ReaderAt into token pages
package pdftext

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// Letter is the page size assumed when a page carries no usable MediaBox
var Letter = [2]float64{612, 792}

// Options control how glyphs are grouped into words
type Options struct {
	RowTolerance  float64 `yaml:"row_tolerance"`   // Max baseline difference of glyphs on one row
	WordGapFactor float64 `yaml:"word_gap_factor"` // Gap, as a fraction of the font size, that splits words
	Ascent        float64 `yaml:"ascent"`          // Fraction of the font size above the baseline
	Descent       float64 `yaml:"descent"`         // Fraction of the font size below the baseline
}

// DefaultOptions returns the grouping used for typical invoices
func DefaultOptions() Options {
	return Options{
		RowTolerance:  2.0,
		WordGapFactor: 0.25,
		Ascent:        0.8,
		Descent:       0.2,
	}
}

// Extract opens a PDF file and returns its words page by page
func Extract(path string, opts Options) ([]tokens.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	return extractPages(r, opts)
}

// ExtractReader reads a PDF of the given size and returns its words page by page
func ExtractReader(ra io.ReaderAt, size int64, opts Options) ([]tokens.Page, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return extractPages(r, opts)
}

func extractPages(r *pdf.Reader, opts Options) (pages []tokens.Page, err error) {
	// The reader panics on some malformed content streams
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("failed to parse pdf content: %v", rec)
		}
	}()

	n := r.NumPage()
	pages = make([]tokens.Page, 0, n)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, tokens.NewPage(nil, Letter[0], Letter[1]))
			continue
		}

		box := mediaBox(page)
		words := groupWords(page.Content().Text, opts)
		for j := range words {
			words[j].X0 -= box.llx
			words[j].X1 -= box.llx
			words[j].Y0 -= box.lly
			words[j].Y1 -= box.lly
		}
		pages = append(pages, tokens.NewPage(words, box.width(), box.height()))
	}
	return pages, nil
}
