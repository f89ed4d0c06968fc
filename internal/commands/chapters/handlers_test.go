package chapterscmd

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/litpress/go-press/chapters"
	"github.com/litpress/go-press/pkg/interfaces"
	"github.com/litpress/go-press/purchases"
)

type stubLoader struct {
	docs map[string]*interfaces.Document
}

func (s *stubLoader) LoadFile(_ context.Context, path string) (*interfaces.Document, error) {
	doc, ok := s.docs[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}
	return doc, nil
}

func (s *stubLoader) LoadDirectory(_ context.Context, _ string) ([]*interfaces.Document, error) {
	out := make([]*interfaces.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out, nil
}

type stubService struct {
	synced []chapters.SyncRequest
	err    error
}

func (s *stubService) Sync(_ context.Context, req chapters.SyncRequest) (*chapters.Chapter, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.synced = append(s.synced, req)
	return &chapters.Chapter{BookID: req.BookID, SourcePath: req.SourcePath}, nil
}

func (s *stubService) GetBySlug(context.Context, chapters.GetBySlugRequest) (*chapters.ChapterView, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) AddBookmark(context.Context, chapters.AddBookmarkRequest) (*purchases.Bookmark, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) ListByBook(context.Context, uuid.UUID) ([]*chapters.Chapter, error) {
	return nil, errors.New("not implemented")
}

func stubFactory(loader *stubLoader) LoaderFactory {
	return func(string, bool) (DocumentLoader, error) {
		return loader, nil
	}
}

func TestSyncFileHandler(t *testing.T) {
	bookID := uuid.New()
	service := &stubService{}
	loader := &stubLoader{docs: map[string]*interfaces.Document{
		"chapter-01.md": {
			FilePath:    "chapter-01.md",
			FrontMatter: interfaces.FrontMatter{Title: "First"},
			Body:        []byte("Body."),
		},
	}}

	handler := newSyncFileHandler(service, nil, stubFactory(loader))

	err := handler.Execute(context.Background(), SyncFileCommand{
		BookID: bookID,
		Path:   "content/chapter-01.md",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.synced) != 1 {
		t.Fatalf("expected one sync call, got %d", len(service.synced))
	}
	if service.synced[0].FrontMatter.Title != "First" {
		t.Fatalf("front matter not forwarded: %+v", service.synced[0])
	}
}

func TestSyncFileHandlerValidation(t *testing.T) {
	handler := newSyncFileHandler(&stubService{}, nil, stubFactory(&stubLoader{}))

	if err := handler.Execute(context.Background(), SyncFileCommand{Path: "x.md"}); err == nil {
		t.Fatal("expected validation error for missing book id")
	}
	if err := handler.Execute(context.Background(), SyncFileCommand{BookID: uuid.New()}); err == nil {
		t.Fatal("expected validation error for missing path")
	}
}

func TestSyncDirectoryHandler(t *testing.T) {
	bookID := uuid.New()
	service := &stubService{}
	loader := &stubLoader{docs: map[string]*interfaces.Document{
		"introduction.md": {
			FilePath:    "introduction.md",
			FrontMatter: interfaces.FrontMatter{Title: "Intro"},
			Body:        []byte("Welcome."),
		},
		"chapter-01.md": {
			FilePath:    "chapter-01.md",
			FrontMatter: interfaces.FrontMatter{Title: "First"},
			Body:        []byte("Body."),
		},
	}}

	handler := newSyncDirectoryHandler(service, nil, stubFactory(loader))

	err := handler.Execute(context.Background(), SyncDirectoryCommand{
		BookID:    bookID,
		Directory: "content",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.synced) != 2 {
		t.Fatalf("expected two sync calls, got %d", len(service.synced))
	}
}

func TestSyncDirectoryHandlerStopsOnError(t *testing.T) {
	service := &stubService{err: errors.New("sync failed")}
	loader := &stubLoader{docs: map[string]*interfaces.Document{
		"chapter-01.md": {
			FilePath:    "chapter-01.md",
			FrontMatter: interfaces.FrontMatter{Title: "First"},
			Body:        []byte("Body."),
		},
	}}

	handler := newSyncDirectoryHandler(service, nil, stubFactory(loader))

	err := handler.Execute(context.Background(), SyncDirectoryCommand{
		BookID:    uuid.New(),
		Directory: "content",
	})
	if err == nil {
		t.Fatal("expected propagated sync error")
	}
}

func TestSyncDirectoryHandlerContinueOnError(t *testing.T) {
	service := &stubService{err: errors.New("sync failed")}
	loader := &stubLoader{docs: map[string]*interfaces.Document{
		"chapter-01.md": {
			FilePath:    "chapter-01.md",
			FrontMatter: interfaces.FrontMatter{Title: "First"},
			Body:        []byte("Body."),
		},
	}}

	handler := newSyncDirectoryHandler(service, nil, stubFactory(loader))

	err := handler.Execute(context.Background(), SyncDirectoryCommand{
		BookID:          uuid.New(),
		Directory:       "content",
		ContinueOnError: true,
	})
	if !errors.Is(err, ErrSyncIncomplete) {
		t.Fatalf("expected ErrSyncIncomplete, got %v", err)
	}
}
