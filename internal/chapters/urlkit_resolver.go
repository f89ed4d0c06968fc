package chapters

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLResolver builds the public reading URL for a chapter.
type URLResolver interface {
	ChapterURL(bookSlug, chapterSlug string) (string, error)
}

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager      *urlkit.RouteManager
	Group        string
	Route        string
	BookParam    string
	ChapterParam string
}

// URLKitResolver resolves chapter URLs using a go-urlkit RouteManager.
type URLKitResolver struct {
	manager *urlkit.RouteManager

	group        string
	route        string
	bookParam    string
	chapterParam string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.Group == "" {
		opts.Group = "books"
	}
	if opts.Route == "" {
		opts.Route = "chapter"
	}
	if opts.BookParam == "" {
		opts.BookParam = "book"
	}
	if opts.ChapterParam == "" {
		opts.ChapterParam = "chapter"
	}

	return &URLKitResolver{
		manager:      opts.Manager,
		group:        strings.TrimSpace(opts.Group),
		route:        strings.TrimSpace(opts.Route),
		bookParam:    opts.BookParam,
		chapterParam: opts.ChapterParam,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// ChapterURL builds the reading URL for the given book and chapter slugs.
func (r *URLKitResolver) ChapterURL(bookSlug, chapterSlug string) (string, error) {
	if r == nil || r.manager == nil {
		return "", nil
	}

	group, err := r.groupForPath(r.group)
	if err != nil || group == nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}

	return builder.
		WithParam(r.bookParam, bookSlug).
		WithParam(r.chapterParam, chapterSlug).
		Build()
}

func (r *URLKitResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("chapters: invalid route group path %q", path)
	}

	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func (r *URLKitResolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("chapters: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("chapters: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("chapters: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("chapters: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("chapters: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("chapters: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
