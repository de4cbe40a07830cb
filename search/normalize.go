package search

import (
	"path/filepath"
	"strings"
)

// Normalize returns the last n components of path joined with single
// spaces, so a one-word query is compared with the final directory name
// only. A path with fewer than n components is returned whole.
func Normalize(n int, path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == filepath.Separator
	})

	total := len(parts)
	if n < 0 {
		n = 0
	}
	sliceLen := 0
	if n < total {
		sliceLen = total - n
	}

	return strings.Join(parts[sliceLen:], " ")
}
