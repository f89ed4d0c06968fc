package purchases

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryPurchaseRepository is an in-memory implementation for scaffolding and tests.
type MemoryPurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[uuid.UUID]*Purchase
	ownership map[string]uuid.UUID
}

// NewMemoryPurchaseRepository creates an empty in-memory purchase repository.
func NewMemoryPurchaseRepository() *MemoryPurchaseRepository {
	return &MemoryPurchaseRepository{
		purchases: make(map[uuid.UUID]*Purchase),
		ownership: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied purchase.
func (m *MemoryPurchaseRepository) Create(_ context.Context, record *Purchase) (*Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePurchase(record)
	m.purchases[copied.ID] = copied
	m.ownership[ownershipKey(copied.UserID, copied.BookID)] = copied.ID
	return clonePurchase(copied), nil
}

// GetByID retrieves a purchase by identifier.
func (m *MemoryPurchaseRepository) GetByID(_ context.Context, id uuid.UUID) (*Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.purchases[id]
	if !ok {
		return nil, &NotFoundError{Resource: "purchase", Key: id.String()}
	}
	return clonePurchase(rec), nil
}

// GetByUserAndBook retrieves the purchase linking a user to a book.
func (m *MemoryPurchaseRepository) GetByUserAndBook(_ context.Context, userID, bookID uuid.UUID) (*Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.ownership[ownershipKey(userID, bookID)]
	if !ok {
		return nil, &NotFoundError{Resource: "purchase", Key: fmt.Sprintf("%s:%s", userID, bookID)}
	}
	return clonePurchase(m.purchases[id]), nil
}

// Update replaces the stored purchase.
func (m *MemoryPurchaseRepository) Update(_ context.Context, record *Purchase) (*Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.purchases[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "purchase", Key: record.ID.String()}
	}

	copied := clonePurchase(record)
	m.purchases[copied.ID] = copied
	m.ownership[ownershipKey(copied.UserID, copied.BookID)] = copied.ID
	return clonePurchase(copied), nil
}

func ownershipKey(userID, bookID uuid.UUID) string {
	return userID.String() + ":" + bookID.String()
}

func clonePurchase(src *Purchase) *Purchase {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Bookmarks) > 0 {
		copied.Bookmarks = append([]Bookmark(nil), src.Bookmarks...)
	}
	return &copied
}
