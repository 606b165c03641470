package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gardar/fieldbox/pkg/fieldbox"
	"github.com/gardar/fieldbox/pkg/hocr"
	"github.com/gardar/fieldbox/pkg/pdftext"
	"github.com/gardar/fieldbox/pkg/tokens"
)

var errNoSource = errors.New("exactly one of --words, --hocr or --pdf is required")

// source names the file words are read from
type source struct {
	words string
	hocr  string
	pdf   string
}

func (s source) validate() error {
	n := 0
	for _, p := range []string{s.words, s.hocr, s.pdf} {
		if p != "" {
			n++
		}
	}
	if n != 1 {
		return errNoSource
	}
	return nil
}

// loadPages reads token pages from whichever source is set
func loadPages(src source, opts pdftext.Options) ([]tokens.Page, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	switch {
	case src.words != "":
		f, err := os.Open(src.words)
		if err != nil {
			return nil, fmt.Errorf("failed to open words file: %w", err)
		}
		defer f.Close()
		return tokens.DecodePages(f)
	case src.hocr != "":
		data, err := os.ReadFile(src.hocr)
		if err != nil {
			return nil, fmt.Errorf("failed to read hOCR file: %w", err)
		}
		return hocr.ParsePages(data)
	default:
		return pdftext.Extract(src.pdf, opts)
	}
}

// loadFields reads a JSON object of extracted field values
func loadFields(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields file: %w", err)
	}
	return fields, nil
}

// buildOutput merges the field values with the resolution summary
func buildOutput(fields map[string]interface{}, result *fieldbox.Result, elapsed time.Duration) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		out[k] = v
	}
	boxes := result.Boxes
	if boxes == nil {
		boxes = []fieldbox.Box{}
	}
	out["boxes"] = boxes
	out["boxes_count"] = result.BoxesCount
	out["words_per_page"] = result.WordsPerPage
	out["execution_time_seconds"] = math.Round(elapsed.Seconds()*100) / 100
	return out
}

// writeJSON writes v indented to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
