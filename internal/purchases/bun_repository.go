package purchases

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

// BunPurchaseRepository implements PurchaseRepository with optional caching.
type BunPurchaseRepository struct {
	repo repository.Repository[*Purchase]
}

// NewBunPurchaseRepository creates a purchase repository without caching.
func NewBunPurchaseRepository(db *bun.DB) *BunPurchaseRepository {
	return NewBunPurchaseRepositoryWithCache(db, nil, nil)
}

// NewBunPurchaseRepositoryWithCache creates a purchase repository with caching services.
func NewBunPurchaseRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPurchaseRepository {
	base := NewPurchaseRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPurchaseRepository{repo: wrapped}
}

func (r *BunPurchaseRepository) Create(ctx context.Context, record *Purchase) (*Purchase, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "purchase", id.String())
	}
	return record, nil
}

func (r *BunPurchaseRepository) GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*Purchase, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.user_id = ?", userID).
				Where("?TableAlias.book_id = ?", bookID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "purchase", Key: fmt.Sprintf("%s:%s", userID, bookID)}
	}
	return records[0], nil
}

func (r *BunPurchaseRepository) Update(ctx context.Context, record *Purchase) (*Purchase, error) {
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
