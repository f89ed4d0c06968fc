package chapters

import (
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
)

func newTestRouteManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "books",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"chapter": "/books/:book/chapters/:chapter",
				},
			},
		},
	})
}

func TestURLKitResolverBuildsChapterURL(t *testing.T) {
	resolver := NewURLKitResolver(URLKitResolverOptions{Manager: newTestRouteManager()})

	url, err := resolver.ChapterURL("practical-go", "introduction")
	if err != nil {
		t.Fatalf("chapter url: %v", err)
	}
	if url != "https://example.com/books/practical-go/chapters/introduction" {
		t.Fatalf("unexpected chapter url %q", url)
	}
}

func TestURLKitResolverNilManager(t *testing.T) {
	resolver := NewURLKitResolver(URLKitResolverOptions{})

	url, err := resolver.ChapterURL("practical-go", "introduction")
	if err != nil {
		t.Fatalf("nil manager must resolve to empty url, got error %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url without a manager, got %q", url)
	}
}

func TestLookupGroupUnknownGroupReturnsError(t *testing.T) {
	group, err := lookupGroup(newTestRouteManager(), "store")
	if err == nil {
		t.Fatal("expected error for unknown route group")
	}
	if group != nil {
		t.Fatalf("expected nil group on lookup failure, got %v", group)
	}
}

func TestLookupChildGroupUnknownChildReturnsError(t *testing.T) {
	manager := newTestRouteManager()
	parent, err := lookupGroup(manager, "books")
	if err != nil {
		t.Fatalf("lookup parent group: %v", err)
	}

	child, err := lookupChildGroup(parent, "locales")
	if err == nil {
		t.Fatal("expected error for unknown child group")
	}
	if child != nil {
		t.Fatalf("expected nil child group on lookup failure, got %v", child)
	}
}

func TestURLKitResolverUnknownGroupSurfacesError(t *testing.T) {
	resolver := NewURLKitResolver(URLKitResolverOptions{
		Manager: newTestRouteManager(),
		Group:   "store",
	})

	if _, err := resolver.ChapterURL("practical-go", "introduction"); err == nil {
		t.Fatal("expected error for unknown route group")
	}
}
