package books

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunBookRepository implements BookRepository with optional caching.
type BunBookRepository struct {
	repo repository.Repository[*Book]
}

// NewBunBookRepository creates a book repository without caching.
func NewBunBookRepository(db *bun.DB) *BunBookRepository {
	return NewBunBookRepositoryWithCache(db, nil, nil)
}

// NewBunBookRepositoryWithCache creates a book repository with caching services.
func NewBunBookRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunBookRepository {
	base := NewBookRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunBookRepository{repo: wrapped}
}

func (r *BunBookRepository) Create(ctx context.Context, record *Book) (*Book, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*Book, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "book", id.String())
	}
	return record, nil
}

func (r *BunBookRepository) GetBySlug(ctx context.Context, slug string) (*Book, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "book", slug)
	}
	return record, nil
}

func (r *BunBookRepository) List(ctx context.Context) ([]*Book, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunBookRepository) Update(ctx context.Context, record *Book) (*Book, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
