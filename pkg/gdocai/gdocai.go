// Package gdocai integrates Google Document AI as a word and field source.
//
// A document is sent to a Document AI processor once. The response carries
// both halves of what field location needs: the recognised words with their
// bounding polygons, which become token pages, and the processor's own
// structured output (form fields or extractor entities), which can stand in
// for an LLM extraction.
//
// Key Types:
//
// - Config: Processor coordinates and credentials
// - Document: Token pages, full text and extracted fields of a processed document
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - DocumentFromProto: Converts a Document AI response into a Document
// - PagesFromProto: Converts Document AI pages into token pages
// - ExtractFormFields: Gets form fields from the document as a map
// - ExtractCustomExtractorFields: Gets extractor entities as a nested map
// - InvoiceFields: Maps invoice parser entities onto invoice field names
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR, forms or invoices
// - Authentication via a credentials file or GOOGLE_APPLICATION_CREDENTIALS
package gdocai

import (
	"context"
	"fmt"
)

// Config holds the Document AI processor settings
type Config struct {
	ProjectID       string `yaml:"project_id"`
	Location        string `yaml:"location"`
	ProcessorID     string `yaml:"processor_id"`
	CredentialsFile string `yaml:"credentials_file"`
	MaxRetries      uint64 `yaml:"max_retries"`
}

// Validate reports missing processor coordinates
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("document ai config is nil")
	}
	if c.ProjectID == "" || c.Location == "" || c.ProcessorID == "" {
		return fmt.Errorf("document ai config requires project_id, location and processor_id")
	}
	return nil
}

// ProcessorName returns the resource name of the configured processor
func (c *Config) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// Process sends a document to Document AI and converts the response.
func Process(ctx context.Context, content []byte, mimeType string, cfg *Config) (*Document, error) {
	raw, err := ProcessDocument(ctx, content, mimeType, cfg)
	if err != nil {
		return nil, err
	}
	return DocumentFromProto(raw), nil
}
