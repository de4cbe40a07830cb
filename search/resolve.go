package search

import (
	"errors"
	"fmt"

	"github.com/montrey/jump/store"
)

// ErrEmptyResult means no stored directory scored above zero, including the
// case where nothing has been recorded yet.
var ErrEmptyResult = errors.New("no matching directory")

// Source supplies the directories to rank.
type Source interface {
	AllDirs() ([]store.Dir, error)
}

// Match is the winning directory and its score.
type Match struct {
	Dir   store.Dir
	Score int
}

// Resolve scores every directory in src against the query tokens and
// returns the highest scoring one.
//
// Only a strictly greater score replaces the current best, so on a tie the
// directory seen first wins. store.Store yields rows in identifier order,
// which makes the oldest entry the tie winner.
func Resolve(src Source, query []string) (Match, error) {
	dirs, err := src.AllDirs()
	if err != nil {
		return Match{}, fmt.Errorf("resolve: %w", err)
	}

	var best Match
	found := false
	for _, d := range dirs {
		s := Score(query, Normalize(len(query), d.Path))
		if s > best.Score {
			best = Match{Dir: d, Score: s}
			found = true
		}
	}

	if !found {
		return Match{}, ErrEmptyResult
	}
	return best, nil
}
