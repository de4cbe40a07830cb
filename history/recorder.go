// Package history records directory visits.
package history

import (
	"errors"
	"fmt"

	"github.com/montrey/jump/store"
)

// Store is the part of the history store the recorder needs.
type Store interface {
	DirByPath(path string) (store.Dir, error)
	NextDirID() (int64, error)
	UpsertDir(d store.Dir) error
}

// RecordVisit loads the row for path, or allocates a new one, bumps its
// access count, stamps it with now and writes it back.
//
// The lookup and the write are separate store calls; callers that share the
// database between processes should run this inside store.DB.Update.
func RecordVisit(s Store, path string, now int64) (store.Dir, error) {
	d, err := s.DirByPath(path)
	if errors.Is(err, store.ErrNotFound) {
		d, err = NewDir(s, path)
	}
	if err != nil {
		return store.Dir{}, err
	}

	d.AccessCount++
	d.LastAccessed = now

	if err := s.UpsertDir(d); err != nil {
		return store.Dir{}, err
	}
	return d, nil
}

// NewDir builds an unsaved row for path with the next free identifier and
// zeroed statistics.
func NewDir(s Store, path string) (store.Dir, error) {
	id, err := s.NextDirID()
	if err != nil {
		return store.Dir{}, err
	}

	// A negative id means the table is corrupt; nothing sensible can be
	// written from here.
	if id < 0 {
		panic(fmt.Sprintf("history: generated id %d for %q is negative", id, path))
	}

	return store.Dir{ID: id, Path: path}, nil
}
