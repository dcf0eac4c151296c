package ui

import (
	"sort"
	"strings"
)

// MaxSuggestDistance is the largest edit distance reported as a likely typo
const MaxSuggestDistance = 3

// SuggestNames returns up to limit candidates within MaxSuggestDistance of
// target, closest first. Distance ignores case; an exact match is excluded.
//
//	SuggestNames("usrs", []string{"users", "posts"}, 3) // ["users"]
func SuggestNames(target string, candidates []string, limit int) []string {
	type match struct {
		name     string
		distance int
	}

	var matches []match
	lower := strings.ToLower(target)
	for _, c := range candidates {
		d := levenshtein(lower, strings.ToLower(c))
		if d <= MaxSuggestDistance && c != target {
			matches = append(matches, match{name: c, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// levenshtein counts the single-rune edits between a and b
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
