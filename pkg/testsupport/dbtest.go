package testsupport

import (
	"database/sql"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/litpress/go-press/pkg/storage"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunSQLiteDB opens an in-memory SQLite database wrapped with bun.
func NewBunSQLiteDB() (*bun.DB, error) {
	return storage.Open(storage.Config{Driver: "sqlite"})
}

// ApplyMigrations runs every .up.sql migration under dir against the database.
func ApplyMigrations(db *bun.DB, fsys fs.FS, dir string) error {
	return storage.Migrate(db, fsys, dir)
}
