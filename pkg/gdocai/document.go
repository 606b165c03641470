package gdocai

import (
	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// Document is the result of a Document AI call reduced to what field
// location consumes
type Document struct {
	Raw             *documentaipb.Document // Original Document AI response
	Text            string                 // Full text content
	Pages           []tokens.Page          // Word tokens per page
	FormFields      map[string]interface{} // Key/value pairs from a form parser
	ExtractorFields map[string]interface{} // Entities from an extractor processor
}

// DocumentFromProto converts a Document AI response into our structure
func DocumentFromProto(doc *documentaipb.Document) *Document {
	if doc == nil {
		return &Document{
			FormFields:      map[string]interface{}{},
			ExtractorFields: map[string]interface{}{},
		}
	}

	return &Document{
		Raw:             doc,
		Text:            doc.GetText(),
		Pages:           PagesFromProto(doc),
		FormFields:      ExtractFormFields(doc),
		ExtractorFields: ExtractCustomExtractorFields(doc),
	}
}

// Fields returns the best field map the processor produced: invoice
// entities when the processor emitted any, form fields otherwise
func (d *Document) Fields() map[string]interface{} {
	if d.Raw != nil {
		if fields := InvoiceFields(d.Raw); len(fields) > 0 {
			return fields
		}
	}
	return d.FormFields
}
