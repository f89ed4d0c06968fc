package books

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes book lookup use cases. Reads apply the visibility rule:
// unpublished books resolve as not found unless the caller holds admin rights.
type Service interface {
	Create(ctx context.Context, req CreateBookRequest) (*Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	GetBySlug(ctx context.Context, slug string, opts ...GetOption) (*Book, error)
	List(ctx context.Context, opts ...GetOption) ([]*Book, error)
}

// CreateBookRequest captures the information required to register a book.
type CreateBookRequest struct {
	Slug           string
	Title          string
	Author         string
	Excerpt        *string
	PriceCents     int
	IsPublished    bool
	SourceRepo     string
	SEOTitle       *string
	SEODescription *string
}

// GetOption configures read behavior.
type GetOption func(*GetOptions)

// GetOptions collects the resolved read configuration.
type GetOptions struct {
	Admin bool
}

// AsAdmin bypasses the published-only visibility filter.
func AsAdmin() GetOption {
	return func(o *GetOptions) {
		o.Admin = true
	}
}

// ResolveGetOptions folds option funcs into a GetOptions value.
func ResolveGetOptions(opts ...GetOption) GetOptions {
	var resolved GetOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}
	return resolved
}
