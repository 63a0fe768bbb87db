package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum KeySimilarity for a key to be suggested.
const DefaultThreshold = 0.6

// Candidate is a suggested key with its similarity score.
type Candidate struct {
	Key   string
	Score float64
}

// Suggest ranks candidates by similarity to want and returns at most limit
// of them scoring at least threshold. An exact match is never suggested.
// Ties are broken by key so results are deterministic.
func Suggest(want string, candidates []string, threshold float64, limit int) []Candidate {
	var out []Candidate

	for _, c := range candidates {
		if c == want {
			continue
		}

		score := KeySimilarity(want, c)
		if score >= threshold {
			out = append(out, Candidate{Key: c, Score: score})
		}
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if r := cmp.Compare(b.Score, a.Score); r != 0 {
			return r
		}

		return cmp.Compare(a.Key, b.Key)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// Keys returns just the keys of cs.
func Keys(cs []Candidate) []string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = c.Key
	}

	return keys
}
