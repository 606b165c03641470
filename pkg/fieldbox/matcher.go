package fieldbox

import (
	"github.com/gardar/fieldbox/pkg/tokens"
)

// Run is the best consecutive word run found for a value on one page
type Run struct {
	Start  int            // Index of the first word in the page's word list
	All    []tokens.Token // Every consumed word, labels included
	Values []tokens.Token // Consumed words that are not labels
	Score  float64
}

// MatchValue slides over the page's words looking for the run that best
// matches the whitespace-split value. From every start index words are
// consumed while they loosely match the value word at the same offset.
// Each run is scored as value words minus LabelPenalty per label word, and
// the strictly highest positive score wins, earliest start first.
func MatchValue(words []tokens.Token, field string, value []string, labels *LabelClassifier, th Thresholds) (Run, bool) {
	var best Run
	found := false

	for i := range words {
		var all, values []tokens.Token
		for j, part := range value {
			if i+j >= len(words) {
				break
			}
			w := words[i+j]
			if !looselyContains(part, w.Text) {
				break
			}
			all = append(all, w)
			if !labels.IsLabel(w.Text, field) {
				values = append(values, w)
			}
		}

		if len(values) == 0 {
			continue
		}

		labelCount := len(all) - len(values)
		score := float64(len(values)) - float64(labelCount)*th.LabelPenalty
		if score > best.Score {
			best = Run{Start: i, All: all, Values: values, Score: score}
			found = true
		}
	}

	return best, found
}
