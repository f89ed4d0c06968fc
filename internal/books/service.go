package books

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/litpress/go-press/internal/identity"
	"github.com/litpress/go-press/internal/logging"
	"github.com/litpress/go-press/pkg/interfaces"
)

// BookRepository abstracts storage operations for book entities.
type BookRepository interface {
	Create(ctx context.Context, record *Book) (*Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	GetBySlug(ctx context.Context, slug string) (*Book, error)
	List(ctx context.Context) ([]*Book, error)
	Update(ctx context.Context, record *Book) (*Book, error)
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

// IDGenerator derives the record id for a new book from its slug.
type IDGenerator func(slug string) uuid.UUID

// WithIDGenerator overrides book id derivation.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
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
	repo   BookRepository
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs a book service with the required dependencies.
func NewService(repo BookRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     identity.BookUUID,
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create registers a new book. The record id is derived from the slug so
// repeated imports of the same catalog converge on the same identity.
func (s *service) Create(ctx context.Context, req CreateBookRequest) (*Book, error) {
	normalized := strings.TrimSpace(req.Slug)
	if normalized == "" {
		return nil, ErrSlugRequired
	}
	if !slug.IsValid(normalized) {
		return nil, ErrSlugInvalid
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	if existing, err := s.repo.GetBySlug(ctx, normalized); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Book{
		ID:             s.id(normalized),
		Slug:           normalized,
		Title:          strings.TrimSpace(req.Title),
		Author:         strings.TrimSpace(req.Author),
		Excerpt:        req.Excerpt,
		PriceCents:     req.PriceCents,
		IsPublished:    req.IsPublished,
		SourceRepo:     strings.TrimSpace(req.SourceRepo),
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("book created", "book_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

// GetByID fetches a book without visibility filtering. Callers holding only a
// reader role should resolve books through GetBySlug.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug fetches a book by slug. Unpublished books resolve as not found
// unless the caller asked for admin visibility.
func (s *service) GetBySlug(ctx context.Context, bookSlug string, opts ...GetOption) (*Book, error) {
	resolved := ResolveGetOptions(opts...)

	record, err := s.repo.GetBySlug(ctx, strings.TrimSpace(bookSlug))
	if err != nil {
		return nil, err
	}
	if !record.IsPublished && !resolved.Admin {
		return nil, &NotFoundError{Resource: "book", Key: bookSlug}
	}
	return record, nil
}

// List returns books visible to the caller.
func (s *service) List(ctx context.Context, opts ...GetOption) ([]*Book, error) {
	resolved := ResolveGetOptions(opts...)

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if resolved.Admin {
		return records, nil
	}

	visible := make([]*Book, 0, len(records))
	for _, record := range records {
		if record.IsPublished {
			visible = append(visible, record)
		}
	}
	return visible, nil
}
