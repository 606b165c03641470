package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gardar/fieldbox/pkg/fieldbox"
	"github.com/gardar/fieldbox/pkg/gdocai"
	"github.com/gardar/fieldbox/pkg/highlight"
)

type docaiOptions struct {
	pdf       string
	mimeType  string
	output    string
	highlight string
	text      string
	debugAPI  string
	imagesDir string
}

func newDocAICmd(a *app) *cobra.Command {
	o := &docaiOptions{}

	cmd := &cobra.Command{
		Use:   "docai",
		Short: "Resolve fields with Google Document AI words and entities",
		Long: `Sends the document to a Document AI processor once and uses the
recognised words as tokens and the processor's entities or form fields as
field values.`,
		Example: "  fieldbox docai --config config.yml --pdf invoice.pdf --highlight boxes.pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDocAI(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.pdf, "pdf", "", "Document to process (required)")
	f.StringVar(&o.mimeType, "mime-type", "application/pdf", "MIME type of the document")
	f.StringVarP(&o.output, "output", "o", "", "Write the result JSON here instead of stdout")
	f.StringVar(&o.highlight, "highlight", "", "Write a PDF with the boxes drawn on it")
	f.StringVar(&o.text, "text", "", "Path to save the OCR text")
	f.StringVar(&o.debugAPI, "debug-api", "", "Path to save the raw API response as JSON")
	f.StringVar(&o.imagesDir, "images", "", "Directory to save the page images returned by Document AI")
	_ = cmd.MarkFlagRequired("pdf")

	return cmd
}

func (a *app) runDocAI(cmd *cobra.Command, o *docaiOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	content, err := os.ReadFile(o.pdf)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	cfg := a.cfg.DocAI
	a.log.Info("fieldbox.docai.process", "processor", cfg.ProcessorName(), "bytes", len(content))
	doc, err := gdocai.Process(ctx, content, o.mimeType, &cfg)
	if err != nil {
		return fmt.Errorf("error processing document: %w", err)
	}

	if err := a.saveDocAIArtifacts(doc, o); err != nil {
		return err
	}

	fields := doc.Fields()
	result, err := fieldbox.New(a.cfg.Options(a.log)).Resolve(ctx, doc.Pages, fields)
	if err != nil {
		return err
	}

	if o.highlight != "" {
		if err := a.writeDocAIHighlight(doc, o, result.Boxes); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), o.output, buildOutput(fields, result, time.Since(start)))
}

// saveDocAIArtifacts writes the optional text, raw response and page images
func (a *app) saveDocAIArtifacts(doc *gdocai.Document, o *docaiOptions) error {
	if o.text != "" {
		if err := os.WriteFile(o.text, []byte(doc.Text), 0644); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		a.log.Info("fieldbox.docai.text_saved", "path", o.text)
	}

	if o.debugAPI != "" && doc.Raw != nil {
		apiJSON, err := gdocai.ToJSON(doc.Raw)
		if err != nil {
			return fmt.Errorf("failed to convert API response to JSON: %w", err)
		}
		if err := os.WriteFile(o.debugAPI, []byte(apiJSON), 0644); err != nil {
			return fmt.Errorf("failed to write API response JSON: %w", err)
		}
		a.log.Info("fieldbox.docai.api_saved", "path", o.debugAPI)
	}

	if o.imagesDir != "" && doc.Raw != nil {
		if err := os.MkdirAll(o.imagesDir, 0755); err != nil {
			return fmt.Errorf("failed to create images directory: %w", err)
		}
		for i, page := range doc.Raw.GetPages() {
			imgBytes, err := gdocai.ExtractImageFromPage(page)
			if err != nil {
				a.log.Warn("fieldbox.docai.image_skipped", "page", i+1, "error", err)
				continue
			}
			imagePath := filepath.Join(o.imagesDir, fmt.Sprintf("page_%d.png", i+1))
			if err := os.WriteFile(imagePath, imgBytes, 0644); err != nil {
				return fmt.Errorf("failed to write image for page %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// writeDocAIHighlight overlays a PDF input directly and renders page images
// for anything else, such as a scanned TIFF
func (a *app) writeDocAIHighlight(doc *gdocai.Document, o *docaiOptions, boxes []fieldbox.Box) error {
	if o.mimeType == "application/pdf" {
		return a.writeHighlight(o.highlight, o.pdf, doc.Pages, boxes, false)
	}

	images, err := gdocai.PageImages(doc.Raw)
	if err != nil {
		a.log.Warn("fieldbox.docai.no_images", "error", err)
		return a.writeHighlight(o.highlight, "", doc.Pages, boxes, false)
	}

	cfg := a.cfg.Highlight
	cfg.Logger = a.log
	out, err := highlight.RenderImages(images, doc.Pages, boxes, cfg)
	if err != nil {
		return fmt.Errorf("failed to highlight boxes: %w", err)
	}
	if err := os.WriteFile(o.highlight, out, 0644); err != nil {
		return fmt.Errorf("failed to write highlighted PDF: %w", err)
	}
	a.log.Info("fieldbox.highlight.saved", "path", o.highlight, "boxes", len(boxes))
	return nil
}
