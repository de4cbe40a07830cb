package store

import (
	"fmt"
)

// AddSearch records that query resolved to the directory dirID.
func (s *Store) AddSearch(dirID int64, query string) error {
	_, err := s.q.Exec(`INSERT INTO last_searches (dir_id, query) VALUES (?, ?)`, dirID, query)
	if err != nil {
		return fmt.Errorf("%w: add search: %w", ErrWrite, err)
	}
	return nil
}

// SearchesForDir returns the queries that resolved to dirID, oldest first.
func (s *Store) SearchesForDir(dirID int64) ([]string, error) {
	rows, err := s.q.Query(`SELECT query FROM last_searches WHERE dir_id = ? ORDER BY rowid`, dirID)
	if err != nil {
		return nil, fmt.Errorf("%w: get searches: %w", ErrRead, err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("%w: scan search: %w", ErrRead, err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: get searches: %w", ErrRead, err)
	}
	return queries, nil
}
