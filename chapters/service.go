package chapters

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/litpress/go-press/pkg/interfaces"
	"github.com/litpress/go-press/purchases"
)

// Service exposes chapter management use cases.
type Service interface {
	Sync(ctx context.Context, req SyncRequest) (*Chapter, error)
	GetBySlug(ctx context.Context, req GetBySlugRequest) (*ChapterView, error)
	AddBookmark(ctx context.Context, req AddBookmarkRequest) (*purchases.Bookmark, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*Chapter, error)
}

// SyncRequest carries one chapter source file pulled from the book's content
// repository: parsed front matter plus the raw Markdown body.
type SyncRequest struct {
	BookID      uuid.UUID
	SourcePath  string
	FrontMatter interfaces.FrontMatter
	Body        string
}

// Validate enforces the required front-matter fields before the service
// touches storage.
func (req SyncRequest) Validate() error {
	return validation.Errors{
		"book_id": validation.Validate(req.BookID, validation.By(requireUUID)),
		"source_path": validation.Validate(req.SourcePath, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("chapters.sync.source_path_required", "source path is required")
			}
			return nil
		})),
		"title": validation.Validate(req.FrontMatter.Title, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("chapters.sync.title_required", "front matter title is required")
			}
			return nil
		})),
	}.Filter()
}

// GetBySlugRequest identifies a chapter by book and chapter slugs. UserID is
// optional; when present the response carries purchase and bookmark state.
// Admin bypasses both book visibility and the purchase gate.
type GetBySlugRequest struct {
	BookSlug    string
	ChapterSlug string
	UserID      *uuid.UUID
	Admin       bool
}

// AddBookmarkRequest captures a reader's saved position within a chapter.
type AddBookmarkRequest struct {
	ChapterID   uuid.UUID
	UserID      uuid.UUID
	ContentHash string
	Excerpt     string
}

// Validate rejects bookmark writes without an identified user or chapter.
func (req AddBookmarkRequest) Validate() error {
	return validation.Errors{
		"chapter_id": validation.Validate(req.ChapterID, validation.By(requireUUID)),
		"user_id": validation.Validate(req.UserID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("chapters.bookmark.user_required", "user id is required")
			}
			return nil
		})),
	}.Filter()
}

func requireUUID(value any) error {
	if value.(uuid.UUID) == uuid.Nil {
		return validation.NewError("chapters.id_required", "identifier is required")
	}
	return nil
}
