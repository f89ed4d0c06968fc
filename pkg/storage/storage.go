package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// ErrUnsupportedDriver indicates the configured driver has no registered dialect.
var ErrUnsupportedDriver = errors.New("storage: unsupported driver")

// Config captures the connection settings for the press database.
type Config struct {
	Driver string
	DSN    string
}

const defaultSQLiteDSN = "file::memory:?cache=shared"

// Open connects to the configured database and wraps it with the matching bun
// dialect. SQLite is the default driver; in-memory SQLite connections are
// pinned to a single connection so the shared store survives pool churn.
func Open(cfg Config) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)

	switch driver {
	case "", "sqlite", "sqlite3":
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
		if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
			bunDB.SetMaxOpenConns(1)
		}
		return bunDB, nil
	case "postgres", "postgresql", "pg":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate executes every .up.sql file found under dir in lexical order.
// Statements are separated with ---bun:split markers. Postgres JSONB casts are
// stripped when the target dialect is SQLite so one set of files serves both
// backends.
func Migrate(db *bun.DB, fsys fs.FS, dir string) error {
	var files []string
	err := fs.WalkDir(fsys, dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: walk migrations: %w", err)
	}
	sort.Strings(files)

	sqlite := strings.EqualFold(db.Dialect().Name().String(), "sqlite")

	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("storage: read migration %s: %w", file, err)
		}
		content := string(raw)
		if sqlite {
			content = strings.ReplaceAll(content, "::jsonb", "")
			content = strings.ReplaceAll(content, "::JSONB", "")
		}
		for _, chunk := range strings.Split(content, "---bun:split") {
			statement := strings.TrimSpace(chunk)
			if statement == "" {
				continue
			}
			if _, err := db.Exec(statement); err != nil {
				return fmt.Errorf("storage: exec migration %s: %w", file, err)
			}
		}
	}
	return nil
}
