package purchases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/litpress/go-press/internal/identity"
	"github.com/litpress/go-press/internal/logging"
	"github.com/litpress/go-press/pkg/interfaces"
)

// PurchaseRepository abstracts storage operations for purchase entities.
type PurchaseRepository interface {
	Create(ctx context.Context, record *Purchase) (*Purchase, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*Purchase, error)
	Update(ctx context.Context, record *Purchase) (*Purchase, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// service implements Service.
type service struct {
	repo   PurchaseRepository
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a purchase service with the required dependencies.
func NewService(repo PurchaseRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create records ownership of a book for a user. The purchase id is derived
// from the (user, book) pair, so a pair can never own two purchase records.
func (s *service) Create(ctx context.Context, req CreatePurchaseRequest) (*Purchase, error) {
	if req.UserID == uuid.Nil {
		return nil, ErrUserRequired
	}
	if req.BookID == uuid.Nil {
		return nil, ErrBookRequired
	}

	if existing, err := s.repo.GetByUserAndBook(ctx, req.UserID, req.BookID); err == nil && existing != nil {
		return nil, ErrPurchaseExists
	} else if err != nil && !errors.Is(err, ErrPurchaseNotFound) {
		return nil, err
	}

	now := s.now()
	record := &Purchase{
		ID:          identity.PurchaseUUID(req.UserID, req.BookID),
		UserID:      req.UserID,
		BookID:      req.BookID,
		AmountCents: req.AmountCents,
		Bookmarks:   []Bookmark{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		"purchase_id", created.ID.String(),
		"user_id", created.UserID.String(),
		"book_id", created.BookID.String(),
	)
	return created, nil
}

// GetByUserAndBook resolves the purchase linking a user to a book.
func (s *service) GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*Purchase, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	if bookID == uuid.Nil {
		return nil, ErrBookRequired
	}
	return s.repo.GetByUserAndBook(ctx, userID, bookID)
}

// Save persists changes to an existing purchase, typically after a bookmark
// update.
func (s *service) Save(ctx context.Context, purchase *Purchase) (*Purchase, error) {
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	purchase.UpdatedAt = s.now()
	return s.repo.Update(ctx, purchase)
}
