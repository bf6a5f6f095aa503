// ABOUTME: Fuzzy filtering over item labels backed by sahilm/fuzzy
// ABOUTME: Returns matching indexes ranked best first, ready to drive a paginator filter

package fuzzy

import "github.com/sahilm/fuzzy"

// Match is one ranked hit.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find matches pattern against items and returns the hits sorted by score,
// best first. An empty pattern matches nothing.
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

// Filter returns the indexes of texts matching keyword, best match first.
// An empty keyword keeps every index in its original order.
func Filter(keyword string, texts []string) []int {
	if keyword == "" {
		all := make([]int, len(texts))
		for i := range all {
			all[i] = i
		}
		return all
	}
	results := fuzzy.Find(keyword, texts)
	idx := make([]int, len(results))
	for i, r := range results {
		idx[i] = r.Index
	}
	return idx
}
