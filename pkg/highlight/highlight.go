// Package highlight renders resolved field boxes into PDF documents.
//
// Boxes are drawn on optional content layers, one per page, so a PDF
// viewer can toggle them. The word tokens can be drawn on a second layer as
// invisible text, which keeps scanned inputs searchable.
//
// Key Features:
//
// - Overlay boxes on the pages of an existing PDF
// - Render boxes over page images, such as Document AI page renders
// - Render boxes over a plain page when only word tokens are available
// - Detect an existing highlight layer to prevent duplication
//
// Main Functions:
//
// - Overlay: Adds highlight layers to an existing PDF
// - RenderImages: Creates a new PDF from page images with highlight layers
// - RenderBlank: Creates a new PDF showing the words and boxes on blank pages
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/fieldbox/pkg/fieldbox"
	"github.com/gardar/fieldbox/pkg/tokens"
)

// ErrNoPages is returned when there are no token pages to draw on
var ErrNoPages = errors.New("no pages to highlight")

// Overlay imports every page of an existing PDF and draws the boxes that
// belong to it. pages supplies the page sizes and, when cfg.WordsLayer is
// set, the words to draw.
func Overlay(inputPDF []byte, pages []tokens.Page, boxes []fieldbox.Box, cfg Config) (out []byte, err error) {
	if len(inputPDF) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	log := logger(cfg)

	layers, err := CheckExistingLayers(inputPDF, cfg.LayerName)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}
	for _, warning := range layers.Warnings {
		log.Warn("highlight.overlay.layer_warning", "warning", warning)
	}
	if layers.HasLayer {
		if !cfg.Force {
			return nil, fmt.Errorf("file already has highlights (layer '%s'), use force to reapply", layers.LayerName)
		}
		log.Warn("highlight.overlay.duplicate_layer", "layer", layers.LayerName)
	}

	// The importer panics on PDFs it cannot parse
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("failed to import PDF pages: %v", rec)
		}
	}()

	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDF))
	byPage := boxesByPage(boxes)

	for i, page := range pages {
		pageNum := i + 1
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		tpl := importer.ImportPageFromStream(pdf, &rs, pageNum, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, page.Width, page.Height)

		if err := drawPage(pdf, page, byPage[pageNum], pageNum, cfg); err != nil {
			return nil, err
		}
	}

	return output(pdf)
}

// RenderImages builds a new PDF with one page image per token page and
// draws the boxes over it
func RenderImages(images [][]byte, pages []tokens.Page, boxes []fieldbox.Box, cfg Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if len(images) < len(pages) {
		return nil, fmt.Errorf("not enough images (%d) for pages (%d)", len(images), len(pages))
	}

	pdf := fpdf.New("P", "pt", "", "")
	byPage := boxesByPage(boxes)

	for i, page := range pages {
		pageNum := i + 1
		if len(images[i]) == 0 {
			return nil, fmt.Errorf("image %d is empty", pageNum)
		}
		imageType, err := detectImageType(images[i])
		if err != nil {
			return nil, fmt.Errorf("image %d has invalid format: %w", pageNum, err)
		}

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		name := fmt.Sprintf("img%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(images[i]))
		pdf.ImageOptions(name, 0, 0, page.Width, page.Height, false, opts, 0, "")

		if err := drawPage(pdf, page, byPage[pageNum], pageNum, cfg); err != nil {
			return nil, err
		}
	}

	return output(pdf)
}

// RenderBlank builds a new PDF that shows the words of each page in grey
// with the boxes drawn over them
func RenderBlank(pages []tokens.Page, boxes []fieldbox.Box, cfg Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	pdf := fpdf.New("P", "pt", "", "")
	byPage := boxesByPage(boxes)

	for i, page := range pages {
		pageNum := i + 1
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)
		pdf.SetTextColor(120, 120, 120)
		for _, word := range page.Words {
			drawWord(pdf, word, cfg)
		}

		drawBoxLayer(pdf, byPage[pageNum], page.Width, page.Height, pageNum, cfg)
	}

	return output(pdf)
}

func drawPage(pdf *fpdf.Fpdf, page tokens.Page, boxes []fieldbox.Box, pageNum int, cfg Config) error {
	if cfg.WordsLayer != "" {
		if err := drawWordLayer(pdf, page, pageNum, cfg); err != nil {
			logger(cfg).Warn("highlight.words.encoding", "page", pageNum, "error", err)
		}
	}
	drawBoxLayer(pdf, boxes, page.Width, page.Height, pageNum, cfg)
	return pdf.Error()
}

func boxesByPage(boxes []fieldbox.Box) map[int][]fieldbox.Box {
	byPage := make(map[int][]fieldbox.Box)
	for _, b := range boxes {
		byPage[b.Page] = append(byPage[b.Page], b)
	}
	return byPage
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func logger(cfg Config) *slog.Logger {
	if cfg.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg.Logger
}
