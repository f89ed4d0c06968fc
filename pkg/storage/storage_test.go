package storage

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestMigrateAppliesFilesInOrder(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite", DSN: "file:storagetest?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	fsys := fstest.MapFS{
		"migrations/0001_create.up.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, payload JSONB DEFAULT '{}'::jsonb);\n---bun:split\nCREATE INDEX idx_notes_id ON notes (id);"),
		},
		"migrations/0002_seed.up.sql": &fstest.MapFile{
			Data: []byte("INSERT INTO notes (id) VALUES (1);"),
		},
		"migrations/ignored.down.sql": &fstest.MapFile{
			Data: []byte("DROP TABLE notes;"),
		},
	}

	if err := Migrate(db, fsys, "migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one seeded row, got %d", count)
	}
}
