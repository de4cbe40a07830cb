package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "jump.db")
	db, err := Init(dbPath)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope", "jump.db"))
		if !errors.Is(err, ErrNotInitialized) {
			t.Fatalf("expected ErrNotInitialized, got %v", err)
		}
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("ErrNotInitialized should also be ErrUnavailable")
		}
	})

	t.Run("File without schema", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "jump.db")
		if err := os.WriteFile(dbPath, nil, 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Open(dbPath)
		if !errors.Is(err, ErrNotInitialized) {
			t.Fatalf("expected ErrNotInitialized, got %v", err)
		}
	})

	t.Run("After Init", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "data", "jump.db")
		db, err := Init(dbPath)
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		db.Close()

		// Init is idempotent
		db, err = Init(dbPath)
		if err != nil {
			t.Fatalf("second Init failed: %v", err)
		}
		db.Close()

		db, err = Open(dbPath)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer db.Close()
		if db.Path() != dbPath {
			t.Errorf("expected path %s, got %s", dbPath, db.Path())
		}
	})
}

func TestDirs(t *testing.T) {
	db := testDB(t)

	t.Run("Empty", func(t *testing.T) {
		id, err := db.NextDirID()
		if err != nil {
			t.Fatalf("NextDirID failed: %v", err)
		}
		if id != 1 {
			t.Errorf("expected first id 1, got %d", id)
		}

		dirs, err := db.AllDirs()
		if err != nil {
			t.Fatalf("AllDirs failed: %v", err)
		}
		if len(dirs) != 0 {
			t.Errorf("expected no dirs, got %d", len(dirs))
		}

		_, err = db.DirByPath("/home/user")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Round trip", func(t *testing.T) {
		want := Dir{ID: 7, Path: "/home/user/Dropbox/Projects", AccessCount: 3, LastAccessed: 1000}
		if err := db.UpsertDir(want); err != nil {
			t.Fatalf("UpsertDir failed: %v", err)
		}

		got, err := db.DirByPath(want.Path)
		if err != nil {
			t.Fatalf("DirByPath failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}

		id, err := db.NextDirID()
		if err != nil {
			t.Fatalf("NextDirID failed: %v", err)
		}
		if id != 8 {
			t.Errorf("expected next id 8, got %d", id)
		}
	})

	t.Run("Upsert replaces by id", func(t *testing.T) {
		if err := db.UpsertDir(Dir{ID: 7, Path: "/home/user/Dropbox/Projects", AccessCount: 4, LastAccessed: 2000}); err != nil {
			t.Fatalf("UpsertDir failed: %v", err)
		}
		dirs, err := db.AllDirs()
		if err != nil {
			t.Fatalf("AllDirs failed: %v", err)
		}
		if len(dirs) != 1 {
			t.Fatalf("expected 1 dir, got %d", len(dirs))
		}
		if dirs[0].AccessCount != 4 || dirs[0].LastAccessed != 2000 {
			t.Errorf("row not replaced: %+v", dirs[0])
		}
	})

	t.Run("Ordering", func(t *testing.T) {
		if err := db.UpsertDir(Dir{ID: 3, Path: "/tmp", AccessCount: 1, LastAccessed: 3000}); err != nil {
			t.Fatal(err)
		}
		if err := db.UpsertDir(Dir{ID: 9, Path: "/etc", AccessCount: 1, LastAccessed: 500}); err != nil {
			t.Fatal(err)
		}

		all, err := db.AllDirs()
		if err != nil {
			t.Fatalf("AllDirs failed: %v", err)
		}
		var ids []int64
		for _, d := range all {
			ids = append(ids, d.ID)
		}
		if len(ids) != 3 || ids[0] != 3 || ids[1] != 7 || ids[2] != 9 {
			t.Errorf("expected ids [3 7 9], got %v", ids)
		}

		recent, err := db.RecentDirs(2)
		if err != nil {
			t.Fatalf("RecentDirs failed: %v", err)
		}
		if len(recent) != 2 {
			t.Fatalf("expected 2 recent dirs, got %d", len(recent))
		}
		if recent[0].Path != "/tmp" || recent[1].Path != "/home/user/Dropbox/Projects" {
			t.Errorf("unexpected recency order: %v", recent)
		}
	})
}

func TestUpdate(t *testing.T) {
	db := testDB(t)

	t.Run("Commit", func(t *testing.T) {
		err := db.Update(func(s *Store) error {
			id, err := s.NextDirID()
			if err != nil {
				return err
			}
			return s.UpsertDir(Dir{ID: id, Path: "/srv", AccessCount: 1, LastAccessed: 10})
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if _, err := db.DirByPath("/srv"); err != nil {
			t.Errorf("committed row missing: %v", err)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.Update(func(s *Store) error {
			if err := s.UpsertDir(Dir{ID: 2, Path: "/opt", AccessCount: 1, LastAccessed: 10}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := db.DirByPath("/opt"); !errors.Is(err, ErrNotFound) {
			t.Errorf("rolled back row should be missing, got %v", err)
		}
	})
}

func TestSearches(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertDir(Dir{ID: 1, Path: "/home/user/src", AccessCount: 1, LastAccessed: 1}); err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{"src", "home src"} {
		if err := db.AddSearch(1, q); err != nil {
			t.Fatalf("AddSearch failed: %v", err)
		}
	}

	queries, err := db.SearchesForDir(1)
	if err != nil {
		t.Fatalf("SearchesForDir failed: %v", err)
	}
	if len(queries) != 2 || queries[0] != "src" || queries[1] != "home src" {
		t.Errorf("unexpected searches: %v", queries)
	}

	queries, err = db.SearchesForDir(2)
	if err != nil {
		t.Fatalf("SearchesForDir failed: %v", err)
	}
	if len(queries) != 0 {
		t.Errorf("expected no searches for unknown dir, got %v", queries)
	}

	// A referenced row can still be rewritten by a later visit.
	if err := db.UpsertDir(Dir{ID: 1, Path: "/home/user/src", AccessCount: 2, LastAccessed: 5}); err != nil {
		t.Fatalf("UpsertDir on searched dir failed: %v", err)
	}
}

func TestMeta(t *testing.T) {
	db := testDB(t)

	v, err := db.Meta("schema_version")
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	if v != SchemaVersion {
		t.Errorf("expected schema version %s, got %q", SchemaVersion, v)
	}

	v, err = db.Meta("missing")
	if err != nil || v != "" {
		t.Errorf("expected empty value for missing key, got %q, %v", v, err)
	}
}
