package purchases

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes purchase lookups and bookmark persistence. Bookmarks are
// saved by updating the owning purchase record.
type Service interface {
	Create(ctx context.Context, req CreatePurchaseRequest) (*Purchase, error)
	GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*Purchase, error)
	Save(ctx context.Context, purchase *Purchase) (*Purchase, error)
}

// CreatePurchaseRequest captures the information required to record ownership.
type CreatePurchaseRequest struct {
	UserID      uuid.UUID
	BookID      uuid.UUID
	AmountCents int
}
