package fieldbox

import (
	"strings"
	"unicode"
)

// NormalizeLoose lowercases and trims text for substring matching
func NormalizeLoose(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// NormalizeForCompare reduces text to its digits when it holds at least four
// of them, so "2026-01-25" and "01/25/2026" compare equal. Anything else
// falls back to NormalizeLoose.
func NormalizeForCompare(text string) string {
	s := NormalizeLoose(text)
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() >= 4 {
		return digits.String()
	}
	return s
}

// tokenPunctuation is stripped by NormalizeToken. Hyphens stay for dates.
var tokenPunctuation = strings.NewReplacer(
	",", "", ".", "", ";", "", ":", "",
	"$", "", "€", "", "£", "", "₹", "",
)

// NormalizeToken lowercases and trims a single word and strips common
// punctuation and currency symbols
func NormalizeToken(text string) string {
	if text == "" {
		return ""
	}
	return tokenPunctuation.Replace(NormalizeLoose(text))
}

// Tokenize splits a value on whitespace
func Tokenize(value string) []string {
	return strings.Fields(value)
}

// looselyContains reports whether either normalized string contains the other
func looselyContains(a, b string) bool {
	na, nb := NormalizeLoose(a), NormalizeLoose(b)
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
