package extract

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gardar/fieldbox/pkg/fieldbox"
)

// addressFields are the fields a model tends to return as arrays of lines
var addressFields = []string{"vendor_address", "customer_address", "billing_address", "shipping_address"}

// labelPatterns are printed labels that leak into extracted values.
// They are applied in order, each at most once.
var labelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^invoice\s+number\s*:?\s*`),
	regexp.MustCompile(`(?i)^order\s+number\s*:?\s*`),
	regexp.MustCompile(`(?i)^bill\s+number\s*:?\s*`),
	regexp.MustCompile(`(?i)^invoice\s+date\s*:?\s*`),
	regexp.MustCompile(`(?i)^due\s+date\s*:?\s*`),
	regexp.MustCompile(`(?i)^total\s*:?\s*`),
	regexp.MustCompile(`(?i)^vendor\s*:?\s*`),
	regexp.MustCompile(`(?i)^from\s*:?\s*`),
	regexp.MustCompile(`(?i)^address\s*:?\s*`),
	regexp.MustCompile(`(?i)^purchase\s+order\s*:?\s*`),
	regexp.MustCompile(`(?i)^account\s+number\s*:?\s*`),
	regexp.MustCompile(`(?i)^currency\s*:?\s*`),
}

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

var (
	documentDate = regexp.MustCompile(monthNames + `\s+\d{1,2},?\s+\d{4}`)
	addressDate  = regexp.MustCompile(`(?i)` + monthNames + `\s+\d{1,2},?\s+\d{4}`)
	writtenDate  = regexp.MustCompile(`^\w+ \d+,? \d{4}`)

	vendorOrderNumber = regexp.MustCompile(`(?i)\s+order\s+number\s+\d+.*$`)
	vendorPONumber    = regexp.MustCompile(`(?i)\s+po\s*#?\s*\d+.*$`)

	addressLabels   = regexp.MustCompile(`(?i)invoice\s+date|due\s+date|due`)
	addressPO       = regexp.MustCompile(`(?i)p\.o\.|po\s*#?\s*\d+`)
	listSeparator   = regexp.MustCompile(`,\s*`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	currencyCodes   = []string{"USD", "EUR", "GBP", "AUD", "CAD"}
	currencySymbols = []string{"$", "€", "£"}
)

// StripFences removes a markdown code fence around model output
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Parse decodes model output into fields. Numbers are kept as json.Number
// so amounts like 1500.00 keep their printed form.
func Parse(output string) (Fields, error) {
	body := StripFences(output)

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var fields Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, &ParseError{Raw: output, Err: err}
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}

// Clean normalizes extracted values so they match the document text.
//
// Empty values are kept as they are. Scalars are trimmed and stripped of
// leading labels, address arrays are joined into one line, dates are
// replaced by the written dates of the document when the model reformatted
// them, and currency codes become the symbol the document uses. Values that
// end up empty become nil. Structured values such as line items pass
// through untouched.
func Clean(fields Fields, text string) Fields {
	cleaned := make(Fields, len(fields))
	for name, raw := range fields {
		if isEmpty(raw) {
			cleaned[name] = raw
			continue
		}

		value, ok := scalarValue(name, raw)
		if !ok {
			cleaned[name] = raw
			continue
		}

		value = cleanValue(name, value, text)
		if value == "" {
			cleaned[name] = nil
		} else {
			cleaned[name] = value
		}
	}
	return cleaned
}

func cleanValue(name, value, text string) string {
	for _, re := range labelPatterns {
		value = strings.TrimSpace(re.ReplaceAllString(value, ""))
	}

	switch name {
	case "invoice_date", "due_date":
		value = repairDate(name, value, text)
	case "vendor_name":
		value = vendorOrderNumber.ReplaceAllString(value, "")
		value = vendorPONumber.ReplaceAllString(value, "")
	case "vendor_address":
		value = addressDate.ReplaceAllString(value, "")
		value = addressLabels.ReplaceAllString(value, "")
		value = addressPO.ReplaceAllString(value, "")
		value = strings.TrimSpace(whitespaceRuns.ReplaceAllString(value, " "))
	case "currency":
		value = currencySymbol(value, text)
	}
	return value
}

// repairDate swaps a reformatted date for the written date found in the
// document. The invoice date is the first written date and the due date the
// second, when there is one.
func repairDate(name, value, text string) string {
	dates := documentDate.FindAllString(text, -1)
	if len(dates) == 0 || writtenDate.MatchString(value) {
		return value
	}
	if name == "due_date" && len(dates) >= 2 {
		return dates[1]
	}
	return dates[0]
}

func currencySymbol(value, text string) string {
	if len(value) <= 1 || !containsFold(currencyCodes, value) {
		return value
	}
	for _, symbol := range currencySymbols {
		if strings.Contains(text, symbol) {
			return symbol
		}
	}
	return value
}

// scalarValue turns a field value into a trimmed string. Address arrays
// are joined into a single line. It reports false for structured values
// that are not addresses.
func scalarValue(name string, raw interface{}) (string, bool) {
	address := contains(addressFields, name)

	switch v := raw.(type) {
	case []interface{}, []string:
		if !address {
			return "", false
		}
		return joinAddress(v), true
	case map[string]interface{}:
		return "", false
	case string:
		s := strings.TrimSpace(v)
		if address && strings.HasPrefix(s, "[") {
			s = flattenAddressString(s)
		}
		return s, true
	default:
		return strings.TrimSpace(fieldbox.CoerceValue(v)), true
	}
}

func joinAddress(list interface{}) string {
	var parts []string
	switch v := list.(type) {
	case []string:
		parts = v
	case []interface{}:
		for _, item := range v {
			if !isEmpty(item) {
				parts = append(parts, fieldbox.CoerceValue(item))
			}
		}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// flattenAddressString handles an address array that arrived as a string,
// such as ["Suite 5A-1204", "450 Somewhere Street"]
func flattenAddressString(s string) string {
	var list []interface{}
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return joinAddress(list)
	}
	s = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "").Replace(s)
	return strings.TrimSpace(listSeparator.ReplaceAllString(s, " "))
}

func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case []interface{}:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
