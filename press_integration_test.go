package press_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	press "github.com/litpress/go-press"
	"github.com/litpress/go-press/books"
	"github.com/litpress/go-press/chapters"
	"github.com/litpress/go-press/internal/di"
	"github.com/litpress/go-press/pkg/interfaces"
	"github.com/litpress/go-press/pkg/testsupport"
	"github.com/litpress/go-press/purchases"
)

func TestModuleChapterLifecycleWithBun(t *testing.T) {
	ctx := context.Background()

	bunDB, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = bunDB.Close()
	})

	if err := testsupport.ApplyMigrations(bunDB, press.GetMigrationsFS(), "data/sql/migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	cfg := press.DefaultConfig()
	// Reads in this test follow writes immediately, so skip the read cache.
	cfg.Cache.Enabled = false

	module, err := press.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new press module: %v", err)
	}

	book, err := module.Books().Create(ctx, books.CreateBookRequest{
		Slug:        "distributed-systems",
		Title:       "Distributed Systems in Practice",
		Author:      "A. Writer",
		PriceCents:  2900,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}

	chapter, err := module.Chapters().Sync(ctx, chapters.SyncRequest{
		BookID:     book.ID,
		SourcePath: "chapter-01.md",
		FrontMatter: interfaces.FrontMatter{
			Title: "Consensus",
		},
		Body: "## Quorums\n\nA majority wins.\n\n## Leader Election\n\nSomeone must decide.",
	})
	if err != nil {
		t.Fatalf("sync chapter: %v", err)
	}
	if chapter.Position != 2 {
		t.Fatalf("expected chapter-01 at position 2, got %d", chapter.Position)
	}
	if chapter.Slug != "consensus" {
		t.Fatalf("unexpected slug %q", chapter.Slug)
	}

	// Anonymous readers see structure but not the paid body.
	view, err := module.Chapters().GetBySlug(ctx, chapters.GetBySlugRequest{
		BookSlug:    book.Slug,
		ChapterSlug: chapter.Slug,
	})
	if err != nil {
		t.Fatalf("anonymous read: %v", err)
	}
	if view.ContentHTML != "" {
		t.Fatalf("expected stripped content for anonymous reader, got %q", view.ContentHTML)
	}
	if len(view.Sections) != 2 {
		t.Fatalf("expected two sections, got %d", len(view.Sections))
	}
	if view.Sections[0].Anchor != "quorums" {
		t.Fatalf("unexpected section anchor %q", view.Sections[0].Anchor)
	}

	userID := uuid.New()
	if _, err := module.Purchases().Create(ctx, purchases.CreatePurchaseRequest{
		UserID:      userID,
		BookID:      book.ID,
		AmountCents: 2900,
	}); err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	view, err = module.Chapters().GetBySlug(ctx, chapters.GetBySlugRequest{
		BookSlug:    book.Slug,
		ChapterSlug: chapter.Slug,
		UserID:      &userID,
	})
	if err != nil {
		t.Fatalf("purchased read: %v", err)
	}
	if !view.Purchased {
		t.Fatal("expected purchased flag for owner")
	}
	if !strings.Contains(view.ContentHTML, "A majority wins.") {
		t.Fatalf("expected full body for owner, got %q", view.ContentHTML)
	}

	bookmark, err := module.Chapters().AddBookmark(ctx, chapters.AddBookmarkRequest{
		ChapterID:   chapter.ID,
		UserID:      userID,
		ContentHash: "sha256:abc",
		Excerpt:     "A majority wins.",
	})
	if err != nil {
		t.Fatalf("add bookmark: %v", err)
	}
	if bookmark.ChapterID != chapter.ID {
		t.Fatalf("bookmark bound to wrong chapter: %s", bookmark.ChapterID)
	}

	view, err = module.Chapters().GetBySlug(ctx, chapters.GetBySlugRequest{
		BookSlug:    book.Slug,
		ChapterSlug: chapter.Slug,
		UserID:      &userID,
	})
	if err != nil {
		t.Fatalf("read with bookmark: %v", err)
	}
	if view.Bookmark == nil || view.Bookmark.ContentHash != "sha256:abc" {
		t.Fatalf("expected bookmark on view, got %+v", view.Bookmark)
	}
}

func TestModuleResyncKeepsSlugAndPosition(t *testing.T) {
	ctx := context.Background()

	bunDB, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = bunDB.Close()
	})

	if err := testsupport.ApplyMigrations(bunDB, press.GetMigrationsFS(), "data/sql/migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	cfg := press.DefaultConfig()
	cfg.Cache.Enabled = false

	module, err := press.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new press module: %v", err)
	}

	book, err := module.Books().Create(ctx, books.CreateBookRequest{
		Slug:        "api-design",
		Title:       "API Design",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}

	first, err := module.Chapters().Sync(ctx, chapters.SyncRequest{
		BookID:      book.ID,
		SourcePath:  "introduction.md",
		FrontMatter: interfaces.FrontMatter{Title: "Introduction", Free: true},
		Body:        "Welcome.",
	})
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}

	second, err := module.Chapters().Sync(ctx, chapters.SyncRequest{
		BookID:      book.ID,
		SourcePath:  "introduction.md",
		FrontMatter: interfaces.FrontMatter{Title: "Introduction", Free: true},
		Body:        "Welcome, updated.",
	})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("resync must update in place, got %s then %s", first.ID, second.ID)
	}
	if second.Slug != first.Slug {
		t.Fatalf("resync must keep slug, got %q then %q", first.Slug, second.Slug)
	}
	if second.Position != 1 {
		t.Fatalf("expected introduction at position 1, got %d", second.Position)
	}

	listed, err := module.Chapters().ListByBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("list chapters: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one chapter after resync, got %d", len(listed))
	}
	if !strings.Contains(listed[0].ContentHTML, "Welcome, updated.") {
		t.Fatalf("expected updated body, got %q", listed[0].ContentHTML)
	}
}
