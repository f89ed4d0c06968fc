package chapters

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

// BunChapterRepository implements ChapterRepository with optional caching.
type BunChapterRepository struct {
	repo repository.Repository[*Chapter]
}

// NewBunChapterRepository creates a chapter repository without caching.
func NewBunChapterRepository(db *bun.DB) *BunChapterRepository {
	return NewBunChapterRepositoryWithCache(db, nil, nil)
}

// NewBunChapterRepositoryWithCache creates a chapter repository with caching services.
func NewBunChapterRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunChapterRepository {
	base := NewChapterRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunChapterRepository{repo: wrapped}
}

func (r *BunChapterRepository) Create(ctx context.Context, record *Chapter) (*Chapter, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*Chapter, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "chapter", id.String())
	}
	return record, nil
}

func (r *BunChapterRepository) GetByBookAndSlug(ctx context.Context, bookID uuid.UUID, slug string) (*Chapter, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.book_id = ?", bookID).
				Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "chapter", Key: fmt.Sprintf("%s:%s", bookID, slug)}
	}
	return records[0], nil
}

func (r *BunChapterRepository) GetByBookAndPath(ctx context.Context, bookID uuid.UUID, sourcePath string) (*Chapter, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.book_id = ?", bookID).
				Where("?TableAlias.source_path = ?", sourcePath)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "chapter", Key: fmt.Sprintf("%s:%s", bookID, sourcePath)}
	}
	return records[0], nil
}

func (r *BunChapterRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*Chapter, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.book_id = ?", bookID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunChapterRepository) Update(ctx context.Context, record *Chapter) (*Chapter, error) {
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
