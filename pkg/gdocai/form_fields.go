package gdocai

import (
	"strings"
	"unicode"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// ExtractFormFields combines form fields from all pages into a single map.
// Keys are the field labels in snake case, so "Invoice Number:" becomes
// "invoice_number". Duplicate keys collect their distinct values in a list.
func ExtractFormFields(docProto *documentaipb.Document) map[string]interface{} {
	fields := make(map[string]interface{})
	if docProto == nil {
		return fields
	}

	for _, page := range docProto.Pages {
		for _, field := range page.FormFields {
			key := FieldKey(textFromLayout(field.FieldName, docProto.Text))
			value := strings.TrimSpace(textFromLayout(field.FieldValue, docProto.Text))
			if key == "" {
				continue
			}

			if existing, exists := fields[key]; exists {
				switch v := existing.(type) {
				case string:
					if v != value {
						fields[key] = []string{v, value}
					}
				case []string:
					if !containsString(v, value) {
						fields[key] = append(v, value)
					}
				}
			} else {
				fields[key] = value
			}
		}
	}

	return fields
}

// FieldKey turns a printed label into a snake case field name
func FieldKey(label string) string {
	words := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, "_")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
