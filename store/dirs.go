package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Dir is one tracked directory and its visit statistics.
type Dir struct {
	ID           int64
	Path         string
	AccessCount  int64
	LastAccessed int64 // Unix seconds
}

const dirColumns = `id, dir, access_count, last_accessed`

// DirByPath fetches the row for path. It returns ErrNotFound if the
// directory has never been recorded.
func (s *Store) DirByPath(path string) (Dir, error) {
	query := `SELECT ` + dirColumns + ` FROM dir WHERE dir = ? ORDER BY id LIMIT 1`
	var d Dir
	err := s.q.QueryRow(query, path).Scan(&d.ID, &d.Path, &d.AccessCount, &d.LastAccessed)
	if errors.Is(err, sql.ErrNoRows) {
		return Dir{}, fmt.Errorf("dir %q: %w", path, ErrNotFound)
	}
	if err != nil {
		return Dir{}, fmt.Errorf("%w: get dir %q: %w", ErrRead, path, err)
	}
	return d, nil
}

// AllDirs returns every row in identifier order.
func (s *Store) AllDirs() ([]Dir, error) {
	return s.queryDirs(`SELECT `+dirColumns+` FROM dir ORDER BY id`)
}

// RecentDirs returns up to limit rows, most recently visited first.
func (s *Store) RecentDirs(limit int) ([]Dir, error) {
	return s.queryDirs(`SELECT `+dirColumns+` FROM dir ORDER BY last_accessed DESC, id LIMIT ?`, limit)
}

func (s *Store) queryDirs(query string, args ...any) ([]Dir, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list dirs: %w", ErrRead, err)
	}
	defer rows.Close()

	var dirs []Dir
	for rows.Next() {
		var d Dir
		if err := rows.Scan(&d.ID, &d.Path, &d.AccessCount, &d.LastAccessed); err != nil {
			return nil, fmt.Errorf("%w: scan dir: %w", ErrRead, err)
		}
		dirs = append(dirs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list dirs: %w", ErrRead, err)
	}
	return dirs, nil
}

// NextDirID returns one more than the largest stored identifier, or 1 for
// an empty table.
func (s *Store) NextDirID() (int64, error) {
	var maxID sql.NullInt64
	if err := s.q.QueryRow(`SELECT MAX(id) FROM dir`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("%w: max id: %w", ErrRead, err)
	}
	if !maxID.Valid {
		return 1, nil
	}
	return maxID.Int64 + 1, nil
}

// UpsertDir writes d, replacing any existing row with the same identifier.
func (s *Store) UpsertDir(d Dir) error {
	// ON CONFLICT rather than INSERT OR REPLACE: REPLACE deletes the old row
	// first, which trips the last_searches foreign key.
	query := `
		INSERT INTO dir (` + dirColumns + `) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dir = excluded.dir,
			access_count = excluded.access_count,
			last_accessed = excluded.last_accessed
	`
	if _, err := s.q.Exec(query, d.ID, d.Path, d.AccessCount, d.LastAccessed); err != nil {
		return fmt.Errorf("%w: upsert dir %q: %w", ErrWrite, d.Path, err)
	}
	return nil
}
