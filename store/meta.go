package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Meta retrieves a value from the meta table. A missing key yields "".
func (s *Store) Meta(key string) (string, error) {
	query := `SELECT value FROM meta WHERE key = ?`
	var value string
	err := s.q.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: get meta %q: %w", ErrRead, key, err)
	}
	return value, nil
}

// SetMeta sets a value in the meta table.
func (s *Store) SetMeta(key, value string) error {
	query := `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.q.Exec(query, key, value); err != nil {
		return fmt.Errorf("%w: set meta %q: %w", ErrWrite, key, err)
	}
	return nil
}
