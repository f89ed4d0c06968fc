package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/litpress/go-press/pkg/interfaces"
)

// LoaderConfig controls how the loader discovers chapter source files inside a
// synced content checkout.
type LoaderConfig struct {
	BasePath  string
	Pattern   string
	Recursive bool
}

// Loader reads Markdown documents from a filesystem. The zero pattern matches
// "*.md".
type Loader struct {
	fsys fs.FS
	cfg  LoaderConfig
}

// NewLoader constructs a loader over the supplied filesystem.
func NewLoader(fsys fs.FS, cfg LoaderConfig) *Loader {
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "*.md"
	}
	return &Loader{fsys: fsys, cfg: cfg}
}

// NewDirLoader constructs a loader rooted at the supplied directory.
func NewDirLoader(basePath string, cfg LoaderConfig) (*Loader, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown loader: stat base path %s: %w", basePath, err)
	}
	cfg.BasePath = basePath
	return NewLoader(os.DirFS(basePath), cfg), nil
}

// LoadFile reads a single document relative to the loader root.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("markdown loader: read %s: %w", filePath, err)
	}

	modified := time.Time{}
	if info, statErr := fs.Stat(l.fsys, filePath); statErr == nil {
		modified = info.ModTime()
	}

	return BuildDocument(filePath, data, modified)
}

// LoadDirectory reads every matching document beneath dir, ordered by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	var docs []*interfaces.Document
	err := fs.WalkDir(l.fsys, dir, func(entryPath string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if !l.cfg.Recursive && entryPath != dir {
				return fs.SkipDir
			}
			return nil
		}

		matched, matchErr := path.Match(l.cfg.Pattern, entry.Name())
		if matchErr != nil {
			return fmt.Errorf("markdown loader: pattern %q: %w", l.cfg.Pattern, matchErr)
		}
		if !matched {
			return nil
		}

		doc, loadErr := l.LoadFile(ctx, entryPath)
		if loadErr != nil {
			return loadErr
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}
