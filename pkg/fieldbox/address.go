package fieldbox

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// ClusterAddress finds the block of words on a page that carries a
// multi-line address. Words matching any address part are collected,
// words far from the median column are dropped, and the survivors are
// split into vertical clusters. The largest cluster wins; on a tie the
// first one in reading order is kept. An empty result means no candidate.
func ClusterAddress(words []tokens.Token, address string, th Thresholds) []tokens.Token {
	var parts []string
	for _, p := range strings.Fields(address) {
		if utf8.RuneCountInString(p) > th.MinPartLength {
			parts = append(parts, strings.ToLower(p))
		}
	}
	if len(parts) == 0 {
		return nil
	}

	candidates := addressCandidates(words, parts, th.MinPartLength)
	if len(candidates) == 0 {
		return nil
	}

	median := medianX0(candidates)
	aligned := make([]tokens.Token, 0, len(candidates))
	for _, c := range candidates {
		if math.Abs(c.X0-median) <= th.HorizontalTolerance {
			aligned = append(aligned, c)
		}
	}
	if len(aligned) == 0 {
		return nil
	}

	sort.SliceStable(aligned, func(i, j int) bool {
		if aligned[i].Top != aligned[j].Top {
			return aligned[i].Top < aligned[j].Top
		}
		return aligned[i].X0 < aligned[j].X0
	})

	return largestCluster(aligned, th.VerticalGap)
}

// addressCandidates returns words that contain, or are contained in, an
// address part. Short words are ignored as noise.
func addressCandidates(words []tokens.Token, parts []string, minLen int) []tokens.Token {
	var candidates []tokens.Token
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if utf8.RuneCountInString(text) <= minLen {
			continue
		}
		lower := strings.ToLower(text)
		for _, part := range parts {
			if strings.Contains(lower, part) || strings.Contains(part, lower) {
				candidates = append(candidates, w)
				break
			}
		}
	}
	return candidates
}

// medianX0 returns the median left edge; an even count averages the middle pair
func medianX0(words []tokens.Token) float64 {
	xs := make([]float64, len(words))
	for i, w := range words {
		xs[i] = w.X0
	}
	sort.Float64s(xs)

	n := len(xs)
	if n%2 == 0 {
		return (xs[n/2-1] + xs[n/2]) / 2
	}
	return xs[n/2]
}

// largestCluster sweeps words sorted in reading order, starting a new
// cluster whenever the top-to-top gap exceeds maxGap
func largestCluster(sorted []tokens.Token, maxGap float64) []tokens.Token {
	var best []tokens.Token
	current := []tokens.Token{sorted[0]}

	flush := func() {
		if len(current) > len(best) {
			best = current
		}
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Top-sorted[i-1].Top > maxGap {
			flush()
			current = []tokens.Token{sorted[i]}
			continue
		}
		current = append(current, sorted[i])
	}
	flush()

	return best
}
