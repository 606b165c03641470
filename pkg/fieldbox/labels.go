package fieldbox

import (
	"strings"
)

// DefaultLabelKeywords are the words that mark a token as a printed label
var DefaultLabelKeywords = []string{
	"invoice", "number", "date", "due", "total", "amount",
	"vendor", "address", "customer", "bill", "order",
	"subtotal", "tax", "from", "to", "purchase",
	"po", "currency", "balance",
}

// DefaultValueTokens lists, per field, words that look like labels but are
// part of the value itself
var DefaultValueTokens = map[string][]string{
	"account_number": {"ACC", "BSB", "A.C.C", "B.S.B"},
}

// LabelClassifier decides whether a word is a structural label or part of
// a field value
type LabelClassifier struct {
	keywords    []string
	valueTokens map[string]map[string]struct{}
}

// NewLabelClassifier creates a classifier from label keywords and a table of
// per-field words that are always value tokens
func NewLabelClassifier(keywords []string, valueTokens map[string][]string) *LabelClassifier {
	c := &LabelClassifier{
		keywords:    make([]string, 0, len(keywords)),
		valueTokens: make(map[string]map[string]struct{}, len(valueTokens)),
	}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.keywords = append(c.keywords, k)
		}
	}
	for field, words := range valueTokens {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[strings.ToUpper(w)] = struct{}{}
		}
		c.valueTokens[field] = set
	}
	return c
}

// DefaultLabelClassifier returns the classifier used for invoices
func DefaultLabelClassifier() *LabelClassifier {
	return NewLabelClassifier(DefaultLabelKeywords, DefaultValueTokens)
}

// IsLabel reports whether word is a label when matching the given field.
// A word is a label if it equals or contains a keyword, unless the field
// lists it as a value token.
func (c *LabelClassifier) IsLabel(word, field string) bool {
	if set, ok := c.valueTokens[field]; ok {
		if _, keep := set[strings.ToUpper(word)]; keep {
			return false
		}
	}

	lower := strings.ToLower(word)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
