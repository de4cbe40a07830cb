package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/monochromegane/go-gitignore"
)

// Excluder decides which directories are never recorded.
type Excluder struct {
	matcher gitignore.IgnoreMatcher
}

// LoadExcluder reads gitignore-style patterns from path. Patterns are
// matched against absolute directory paths, so "/tmp" only matches the top
// level /tmp while "node_modules" matches at any depth. A missing file
// excludes nothing.
func LoadExcluder(path string) (*Excluder, error) {
	if path == "" {
		return &Excluder{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Excluder{}, nil
		}
		return nil, fmt.Errorf("exclude file: %w", err)
	}

	matcher, err := gitignore.NewGitIgnore(path, string(filepath.Separator))
	if err != nil {
		return nil, fmt.Errorf("exclude file %s: %w", path, err)
	}
	return &Excluder{matcher: matcher}, nil
}

// Excluded reports whether dir, or any directory above it, matches one of
// the patterns.
func (e *Excluder) Excluded(dir string) bool {
	if e == nil || e.matcher == nil {
		return false
	}

	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		if d != string(filepath.Separator) && e.matcher.Match(d, true) {
			return true
		}
		if parent := filepath.Dir(d); parent == d {
			return false
		}
	}
}
