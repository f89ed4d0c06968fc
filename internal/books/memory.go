package books

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryBookRepository is an in-memory implementation for scaffolding and tests.
type MemoryBookRepository struct {
	mu        sync.RWMutex
	books     map[uuid.UUID]*Book
	slugIndex map[string]uuid.UUID
}

// NewMemoryBookRepository creates an empty in-memory book repository.
func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{
		books:     make(map[uuid.UUID]*Book),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied book.
func (m *MemoryBookRepository) Create(_ context.Context, record *Book) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneBook(record)
	m.books[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneBook(copied), nil
}

// GetByID retrieves a book by identifier.
func (m *MemoryBookRepository) GetByID(_ context.Context, id uuid.UUID) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.books[id]
	if !ok {
		return nil, &NotFoundError{Resource: "book", Key: id.String()}
	}
	return cloneBook(rec), nil
}

// GetBySlug retrieves a book by slug, returning NotFoundError when absent.
func (m *MemoryBookRepository) GetBySlug(_ context.Context, slug string) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "book", Key: slug}
	}
	return cloneBook(m.books[id]), nil
}

// List returns all books ordered by slug.
func (m *MemoryBookRepository) List(_ context.Context) ([]*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Book, 0, len(m.books))
	for _, rec := range m.books {
		out = append(out, cloneBook(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

// Update replaces the stored book.
func (m *MemoryBookRepository) Update(_ context.Context, record *Book) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.books[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "book", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := cloneBook(record)
	m.books[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneBook(copied), nil
}

func cloneBook(src *Book) *Book {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Excerpt != nil {
		excerpt := *src.Excerpt
		copied.Excerpt = &excerpt
	}
	if src.SEOTitle != nil {
		title := *src.SEOTitle
		copied.SEOTitle = &title
	}
	if src.SEODescription != nil {
		desc := *src.SEODescription
		copied.SEODescription = &desc
	}
	return &copied
}
