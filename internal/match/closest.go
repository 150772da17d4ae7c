package match

import (
	"cmp"
	"slices"
)

// Defaults used by Closest.
const (
	MinSimilarity  = 0.6
	MaxSuggestions = 3
)

type scored struct {
	name  string
	score float64
}

// Closest returns up to MaxSuggestions candidates similar to name, best
// first. Ties keep candidate order. An exact normalized match is returned
// alone.
func Closest(name string, candidates []string) []string {
	var ranked []scored

	for _, c := range candidates {
		s := Similarity(name, c)
		if s == 1 {
			return []string{c}
		}

		if s >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(len(ranked), MaxSuggestions))
	for _, r := range ranked[:min(len(ranked), MaxSuggestions)] {
		out = append(out, r.name)
	}

	return out
}
