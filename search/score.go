package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Score compares the query tokens against a normalized path and returns a
// similarity in [0, 100]. Token order, case and punctuation do not matter.
func Score(query []string, normalized string) int {
	return TokenSortRatio(strings.Join(query, " "), normalized)
}

// TokenSortRatio sorts the whitespace-separated tokens of both strings
// before comparing them with Ratio.
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

// Ratio is the normalized Levenshtein similarity of two processed strings:
// 100 for identical strings, 0 when nothing lines up or either is empty.
func Ratio(a, b string) int {
	a, b = process(a), process(b)
	if a == "" || b == "" {
		return 0
	}

	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := max(la, lb)
	dist := levenshtein.ComputeDistance(a, b)

	return int(math.Round(100 * float64(maxLen-dist) / float64(maxLen)))
}

func sortTokens(s string) string {
	tokens := strings.Fields(process(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// process lower-cases s, turns every rune that is not a letter or digit
// into a space and trims the result.
func process(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(s)
}
