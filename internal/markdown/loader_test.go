package markdown

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestLoaderLoadDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"introduction.md":  {Data: []byte("---\ntitle: Introduction\n---\n\nWelcome.")},
		"chapter-01.md":    {Data: []byte("---\ntitle: One\n---\n\nFirst.")},
		"notes.txt":        {Data: []byte("ignored")},
		"drafts/wip.md":    {Data: []byte("---\ntitle: WIP\n---\n\nDraft.")},
		"drafts/README.md": {Data: []byte("---\ntitle: Readme\n---\n\nMeta.")},
	}

	loader := NewLoader(fsys, LoaderConfig{Recursive: false})

	docs, err := loader.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].FilePath != "chapter-01.md" || docs[1].FilePath != "introduction.md" {
		t.Fatalf("documents not ordered by path: %q, %q", docs[0].FilePath, docs[1].FilePath)
	}
	if docs[1].FrontMatter.Title != "Introduction" {
		t.Fatalf("frontmatter not parsed: %+v", docs[1].FrontMatter)
	}
}

func TestLoaderLoadDirectoryRecursive(t *testing.T) {
	fsys := fstest.MapFS{
		"introduction.md": {Data: []byte("---\ntitle: Introduction\n---\n\nWelcome.")},
		"extra/bonus.md":  {Data: []byte("---\ntitle: Bonus\n---\n\nExtra.")},
	}

	loader := NewLoader(fsys, LoaderConfig{Recursive: true})

	docs, err := loader.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

func TestLoaderLoadFileMissing(t *testing.T) {
	loader := NewLoader(fstest.MapFS{}, LoaderConfig{})

	if _, err := loader.LoadFile(context.Background(), "missing.md"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
