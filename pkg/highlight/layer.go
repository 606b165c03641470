package highlight

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/fieldbox/pkg/fieldbox"
	"github.com/gardar/fieldbox/pkg/tokens"
)

// layerTitle formats the per-page layer name
func layerTitle(name string, pageNum int) string {
	if pageNum > 0 {
		return fmt.Sprintf("%s - Page %d", name, pageNum)
	}
	return name
}

// drawBoxLayer draws the boxes of one page onto their own layer.
// Box coordinates are normalized with a top-left origin and are scaled by
// the page size w x h.
func drawBoxLayer(pdf *fpdf.Fpdf, boxes []fieldbox.Box, w, h float64, pageNum int, cfg Config) {
	if len(boxes) == 0 {
		return
	}

	layer := pdf.AddLayer(layerTitle(cfg.LayerName, pageNum), true)
	pdf.BeginLayer(layer)

	pdf.SetDrawColor(cfg.Color.R, cfg.Color.G, cfg.Color.B)
	pdf.SetFillColor(cfg.Color.R, cfg.Color.G, cfg.Color.B)
	pdf.SetTextColor(cfg.Color.R, cfg.Color.G, cfg.Color.B)
	pdf.SetLineWidth(cfg.LineWidth)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)

	for _, b := range boxes {
		x, y := b.X*w, b.Y*h
		bw, bh := b.Width*w, b.Height*h

		if cfg.FillAlpha > 0 {
			pdf.SetAlpha(cfg.FillAlpha, "Normal")
			pdf.Rect(x, y, bw, bh, "F")
			pdf.SetAlpha(1, "Normal")
		}
		pdf.Rect(x, y, bw, bh, "D")

		if cfg.Labels {
			label, _ := toLatin1(b.Field)
			ly := y - 2
			if ly < cfg.Font.Size {
				// No room above the box, so print under it
				ly = y + bh + cfg.Font.Size
			}
			pdf.Text(x, ly, label)
		}
	}

	pdf.EndLayer()
}

// drawWordLayer draws the page's words as text so the output stays
// searchable. The text is invisible unless debug is set.
func drawWordLayer(pdf *fpdf.Fpdf, page tokens.Page, pageNum int, cfg Config) error {
	layer := pdf.AddLayer(layerTitle(cfg.WordsLayer, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)

	if cfg.Debug {
		pdf.SetTextColor(255, 0, 0)
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal")
	}

	encodingErrors := 0
	for _, word := range page.Words {
		if !drawWord(pdf, word, cfg) {
			encodingErrors++
		}
	}

	if !cfg.Debug {
		pdf.SetAlpha(1, "Normal")
	}
	pdf.EndLayer()

	// Report encoding errors if more than a threshold
	if n := len(page.Words); n > 0 && encodingErrors > n/10 {
		return fmt.Errorf("character encoding issues in %d of %d words", encodingErrors, n)
	}
	return nil
}

// drawWord renders a single word scaled to its token width.
// It reports false when the text could not be encoded as Latin-1.
func drawWord(pdf *fpdf.Fpdf, word tokens.Token, cfg Config) bool {
	text, ok := toLatin1(word.Text)

	wordWidth := word.Width()
	strWidth := pdf.GetStringWidth(text)
	if strWidth > 0 && wordWidth > 0 {
		pdf.SetFontSize(cfg.Font.Size * wordWidth / strWidth)
	}

	fontSize, _ := pdf.GetFontSize()
	pdf.Text(word.X0, word.Top+fontSize*cfg.Font.AscentRatio, text)
	pdf.SetFontSize(cfg.Font.Size)

	if cfg.Debug {
		pdf.Rect(word.X0, word.Top, wordWidth, word.Bottom-word.Top, "D")
	}
	return ok
}
