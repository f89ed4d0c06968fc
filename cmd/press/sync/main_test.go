package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeChapterFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRunSyncCreatesBookAndChapters(t *testing.T) {
	dir := t.TempDir()
	writeChapterFile(t, dir, "introduction.md", "---\ntitle: Introduction\nisFree: true\n---\n\nWelcome to the book.\n")
	writeChapterFile(t, dir, "chapter-01.md", "---\ntitle: Getting Started\n---\n\n## Setup\n\nInstall the toolchain.\n")

	if err := runSync([]string{
		"-book", "sync-cli-demo",
		"-book-title", "Sync CLI Demo",
		"-publish",
		"-content-dir", dir,
	}); err != nil {
		t.Fatalf("runSync returned error: %v", err)
	}
}

func TestRunSyncRequiresBookSlug(t *testing.T) {
	if err := runSync([]string{"-content-dir", t.TempDir()}); err == nil {
		t.Fatal("expected error for missing book slug")
	}
}

func TestRunSyncRequiresTitleForNewBook(t *testing.T) {
	if err := runSync([]string{
		"-book", "sync-cli-missing-title",
		"-content-dir", t.TempDir(),
	}); err == nil {
		t.Fatal("expected error when creating a book without a title")
	}
}
