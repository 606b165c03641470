package hocr

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractHOCRText extracts all text from an HOCR document
// Lines are separated by newlines and pages by blank lines
func ExtractHOCRText(hocrDoc *HOCR) string {
	var builder strings.Builder

	for i, page := range hocrDoc.Pages {
		if i > 0 {
			builder.WriteString("\n")
		}
		for _, line := range page.Lines {
			for j, word := range line.Words {
				if j > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(word.Text)
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class list holds class exactly
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func hasAnyClass(n *html.Node, classes []string) bool {
	for _, c := range classes {
		if hasClass(n, c) {
			return true
		}
	}
	return false
}
