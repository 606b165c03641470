package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil {
		return ""
	}
	return textFromAnchor(layout.TextAnchor, fullText)
}

// textFromAnchor concatenates the anchor's segments of the document text.
// Offsets are rune offsets and are clamped to the text.
func textFromAnchor(anchor *documentaipb.Document_TextAnchor, fullText string) string {
	if anchor == nil {
		return ""
	}
	runes := []rune(fullText)
	total := len(runes)

	var result strings.Builder
	for _, seg := range anchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > total {
			end = total
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}
