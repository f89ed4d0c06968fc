package di

import (
	"context"
	"strings"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	pressbooks "github.com/litpress/go-press/books"
	presschapters "github.com/litpress/go-press/chapters"
	"github.com/litpress/go-press/internal/runtimeconfig"
	"github.com/litpress/go-press/pkg/interfaces"
)

func TestNewContainerDefaults(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.BookService() == nil {
		t.Fatal("expected book service to be wired")
	}
	if container.ChapterService() == nil {
		t.Fatal("expected chapter service to be wired")
	}
	if container.PurchaseService() == nil {
		t.Fatal("expected purchase service to be wired")
	}
	if container.MarkdownRenderer() == nil {
		t.Fatal("expected markdown renderer to be wired")
	}
	if container.RouteManager() != nil {
		t.Fatal("route manager must stay nil without navigation config")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Features.AdvancedCache = true

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected validation error for repository cache without cache")
	}
}

func TestContainerSyncAndReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	book, err := container.BookService().Create(ctx, pressbooks.CreateBookRequest{
		Slug:        "practical-go",
		Title:       "Practical Go",
		Author:      "R. Pike",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}

	chapter, err := container.ChapterService().Sync(ctx, presschapters.SyncRequest{
		BookID:     book.ID,
		SourcePath: "introduction.md",
		FrontMatter: interfaces.FrontMatter{
			Title: "Introduction",
			Free:  true,
		},
		Body: "## Why Go\n\nBecause it ships.",
	})
	if err != nil {
		t.Fatalf("sync chapter: %v", err)
	}
	if chapter.Position != 1 {
		t.Fatalf("expected introduction at position 1, got %d", chapter.Position)
	}

	view, err := container.ChapterService().GetBySlug(ctx, presschapters.GetBySlugRequest{
		BookSlug:    "practical-go",
		ChapterSlug: chapter.Slug,
	})
	if err != nil {
		t.Fatalf("get chapter: %v", err)
	}
	if !strings.Contains(view.ContentHTML, "Because it ships.") {
		t.Fatalf("expected free chapter body in view, got %q", view.ContentHTML)
	}
}

func TestContainerNavigationBuildsResolver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "books",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"chapter": "/books/:book/chapters/:chapter",
				},
			},
		},
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.RouteManager() == nil {
		t.Fatal("expected route manager for configured navigation")
	}
	if container.urlResolver == nil {
		t.Fatal("expected chapter URL resolver for configured navigation")
	}

	url, err := container.urlResolver.ChapterURL("practical-go", "introduction")
	if err != nil {
		t.Fatalf("resolve chapter url: %v", err)
	}
	if url != "https://example.com/books/practical-go/chapters/introduction" {
		t.Fatalf("unexpected chapter url %q", url)
	}
}
