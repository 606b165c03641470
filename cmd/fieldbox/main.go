// fieldbox locates extracted document fields on the page and reports a
// normalized bounding box for each.
//
// Words come from a JSON word dump, an hOCR file or the text layer of a PDF.
// Field values come from a JSON file or from a local Ollama model. The
// docai command uses Google Document AI for both.
//
// Configuration:
//
// An optional YAML file overrides the defaults:
//
//	resolve:
//	  concurrency: 4
//	  thresholds:
//	    pad_x: 0.05
//	docai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//	ollama:
//	  model: "qwen2.5:3b"
//
// Usage:
//
//	fieldbox resolve --pdf invoice.pdf --llm [--highlight boxes.pdf]
//	fieldbox resolve --words pages.json --fields fields.json
//	fieldbox resolve --hocr scan.hocr --fields fields.json
//	fieldbox docai --config config.yml --pdf invoice.pdf [--highlight boxes.pdf]
//	fieldbox words --pdf invoice.pdf
//
// Environment:
//
//	GOOGLE_APPLICATION_CREDENTIALS  Credentials file for Document AI
//	OLLAMA_HOST                     Ollama server, host:port or URL
//	FIELDBOX_CONCURRENCY            Fields resolved in parallel
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
