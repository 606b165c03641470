package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gardar/fieldbox/pkg/extract"
	"github.com/gardar/fieldbox/pkg/fieldbox"
	"github.com/gardar/fieldbox/pkg/highlight"
	"github.com/gardar/fieldbox/pkg/tokens"
)

type resolveOptions struct {
	src        source
	fieldsPath string
	useLLM     bool
	prompt     string
	output     string
	highlight  string
	force      bool
}

func newResolveCmd(a *app) *cobra.Command {
	o := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve field values to bounding boxes",
		Example: `  fieldbox resolve --pdf invoice.pdf --llm
  fieldbox resolve --words pages.json --fields fields.json --highlight boxes.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResolve(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.src.words, "words", "", "JSON word dump: [{\"words\": [...], \"width\": w, \"height\": h}]")
	f.StringVar(&o.src.hocr, "hocr", "", "hOCR file to read words from")
	f.StringVar(&o.src.pdf, "pdf", "", "Text-based PDF to read words from")
	f.StringVar(&o.fieldsPath, "fields", "", "JSON object of extracted field values")
	f.BoolVar(&o.useLLM, "llm", false, "Extract field values with the configured Ollama model")
	f.StringVar(&o.prompt, "prompt", "", "Additional instructions for the model")
	f.StringVarP(&o.output, "output", "o", "", "Write the result JSON here instead of stdout")
	f.StringVar(&o.highlight, "highlight", "", "Write a PDF with the boxes drawn on it")
	f.BoolVar(&o.force, "force", false, "Highlight even if the PDF already has a highlight layer")
	cmd.MarkFlagsMutuallyExclusive("words", "hocr", "pdf")
	cmd.MarkFlagsMutuallyExclusive("fields", "llm")
	cmd.MarkFlagsOneRequired("fields", "llm")

	return cmd
}

func (a *app) runResolve(cmd *cobra.Command, o *resolveOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	pages, err := loadPages(o.src, a.cfg.PDF)
	if err != nil {
		return err
	}
	a.log.Info("fieldbox.words.loaded", "pages", len(pages), "words_per_page", tokens.WordsPerPage(pages))

	var fields map[string]interface{}
	if o.useLLM {
		fields, err = a.extractFields(ctx, tokens.DocumentText(pages), o.prompt)
	} else {
		fields, err = loadFields(o.fieldsPath)
	}
	if err != nil {
		return err
	}

	result, err := fieldbox.New(a.cfg.Options(a.log)).Resolve(ctx, pages, fields)
	if err != nil {
		return err
	}

	if o.highlight != "" {
		if err := a.writeHighlight(o.highlight, o.src.pdf, pages, result.Boxes, o.force); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), o.output, buildOutput(fields, result, time.Since(start)))
}

// extractFields runs the Ollama extractor over the document text
func (a *app) extractFields(ctx context.Context, text, prompt string) (map[string]interface{}, error) {
	ex, err := extract.NewOllama(a.cfg.Ollama, a.log)
	if err != nil {
		return nil, err
	}
	fields, raw, err := ex.ExtractFields(ctx, extract.Request{Text: text, Instructions: prompt})
	var perr *extract.ParseError
	if errors.As(err, &perr) {
		a.log.Debug("fieldbox.llm.raw_output", "raw", string(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("field extraction failed: %w", err)
	}
	return fields, nil
}

// writeHighlight overlays the boxes on the source PDF when there is one,
// otherwise it draws the words and boxes on blank pages
func (a *app) writeHighlight(path, pdfPath string, pages []tokens.Page, boxes []fieldbox.Box, force bool) error {
	cfg := a.cfg.Highlight
	cfg.Logger = a.log
	cfg.Force = cfg.Force || force

	var (
		out []byte
		err error
	)
	if pdfPath != "" {
		input, rerr := os.ReadFile(pdfPath)
		if rerr != nil {
			return fmt.Errorf("failed to read PDF file: %w", rerr)
		}
		out, err = highlight.Overlay(input, pages, boxes, cfg)
	} else {
		out, err = highlight.RenderBlank(pages, boxes, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to highlight boxes: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write highlighted PDF: %w", err)
	}
	a.log.Info("fieldbox.highlight.saved", "path", path, "boxes", len(boxes))
	return nil
}
