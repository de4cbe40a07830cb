package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/montrey/jump/store"
)

// FilterResult is a directory kept by Filter.
type FilterResult struct {
	Dir     store.Dir
	Matches []int // Indices of matched characters in Dir.Path
}

// Filter keeps the directories whose path fuzzy-matches query, in their
// original order. It narrows a list for browsing and does not rank.
func Filter(dirs []store.Dir, query string) []FilterResult {
	if query == "" {
		results := make([]FilterResult, len(dirs))
		for i, d := range dirs {
			results[i] = FilterResult{Dir: d}
		}
		return results
	}

	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = d.Path
	}

	// Remove spaces to support "gap" matching ("dev src" -> "devsrc"): the
	// order of the words is kept but they may span separators.
	cleanQuery := strings.ReplaceAll(query, " ", "")
	matches := fuzzy.Find(cleanQuery, paths)

	// fuzzy.Find sorts by its own score; restore the caller's order.
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})

	results := make([]FilterResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, FilterResult{
			Dir:     dirs[m.Index],
			Matches: m.MatchedIndexes,
		})
	}
	return results
}
