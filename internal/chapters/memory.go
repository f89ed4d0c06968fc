package chapters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryChapterRepository is an in-memory implementation for scaffolding and tests.
type MemoryChapterRepository struct {
	mu        sync.RWMutex
	chapters  map[uuid.UUID]*Chapter
	slugIndex map[string]uuid.UUID
	pathIndex map[string]uuid.UUID
}

// NewMemoryChapterRepository creates an empty in-memory chapter repository.
func NewMemoryChapterRepository() *MemoryChapterRepository {
	return &MemoryChapterRepository{
		chapters:  make(map[uuid.UUID]*Chapter),
		slugIndex: make(map[string]uuid.UUID),
		pathIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied chapter, enforcing the compound uniqueness the
// SQL schema guarantees through indexes.
func (m *MemoryChapterRepository) Create(_ context.Context, record *Chapter) (*Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.slugIndex[compoundKey(record.BookID, record.Slug)]; taken {
		return nil, fmt.Errorf("chapter slug %q already exists for book %s", record.Slug, record.BookID)
	}
	if _, taken := m.pathIndex[compoundKey(record.BookID, record.SourcePath)]; taken {
		return nil, fmt.Errorf("chapter path %q already exists for book %s", record.SourcePath, record.BookID)
	}

	copied := cloneChapter(record)
	m.chapters[copied.ID] = copied
	m.slugIndex[compoundKey(copied.BookID, copied.Slug)] = copied.ID
	m.pathIndex[compoundKey(copied.BookID, copied.SourcePath)] = copied.ID
	return cloneChapter(copied), nil
}

// GetByID retrieves a chapter by identifier.
func (m *MemoryChapterRepository) GetByID(_ context.Context, id uuid.UUID) (*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.chapters[id]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: id.String()}
	}
	return cloneChapter(rec), nil
}

// GetByBookAndSlug retrieves a chapter by its book-scoped slug.
func (m *MemoryChapterRepository) GetByBookAndSlug(_ context.Context, bookID uuid.UUID, slug string) (*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[compoundKey(bookID, slug)]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: fmt.Sprintf("%s:%s", bookID, slug)}
	}
	return cloneChapter(m.chapters[id]), nil
}

// GetByBookAndPath retrieves a chapter by its book-scoped source path.
func (m *MemoryChapterRepository) GetByBookAndPath(_ context.Context, bookID uuid.UUID, sourcePath string) (*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[compoundKey(bookID, sourcePath)]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: fmt.Sprintf("%s:%s", bookID, sourcePath)}
	}
	return cloneChapter(m.chapters[id]), nil
}

// ListByBook returns the book's chapters ordered by position.
func (m *MemoryChapterRepository) ListByBook(_ context.Context, bookID uuid.UUID) ([]*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Chapter, 0)
	for _, rec := range m.chapters {
		if rec.BookID == bookID {
			out = append(out, cloneChapter(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}

// Update replaces the stored chapter.
func (m *MemoryChapterRepository) Update(_ context.Context, record *Chapter) (*Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.chapters[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: record.ID.String()}
	}

	if record.Slug != existing.Slug {
		if owner, taken := m.slugIndex[compoundKey(record.BookID, record.Slug)]; taken && owner != record.ID {
			return nil, fmt.Errorf("chapter slug %q already exists for book %s", record.Slug, record.BookID)
		}
	}

	delete(m.slugIndex, compoundKey(existing.BookID, existing.Slug))
	delete(m.pathIndex, compoundKey(existing.BookID, existing.SourcePath))

	copied := cloneChapter(record)
	m.chapters[copied.ID] = copied
	m.slugIndex[compoundKey(copied.BookID, copied.Slug)] = copied.ID
	m.pathIndex[compoundKey(copied.BookID, copied.SourcePath)] = copied.ID
	return cloneChapter(copied), nil
}

func compoundKey(bookID uuid.UUID, value string) string {
	return bookID.String() + ":" + value
}

func cloneChapter(src *Chapter) *Chapter {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Excerpt != nil {
		excerpt := *src.Excerpt
		copied.Excerpt = &excerpt
	}
	if src.ExcerptHTML != nil {
		excerptHTML := *src.ExcerptHTML
		copied.ExcerptHTML = &excerptHTML
	}
	if src.SEOTitle != nil {
		title := *src.SEOTitle
		copied.SEOTitle = &title
	}
	if src.SEODescription != nil {
		desc := *src.SEODescription
		copied.SEODescription = &desc
	}
	if len(src.SEOKeywords) > 0 {
		copied.SEOKeywords = append([]string(nil), src.SEOKeywords...)
	}
	if len(src.Sections) > 0 {
		copied.Sections = append([]Section(nil), src.Sections...)
	}
	return &copied
}
