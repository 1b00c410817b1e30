package taxonomy

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunTermRepository implements TermRepository with optional caching.
type BunTermRepository struct {
	repo repository.Repository[*Term]
}

var _ TermRepository = (*BunTermRepository)(nil)

// NewBunTermRepository creates a term repository without caching.
func NewBunTermRepository(db *bun.DB) *BunTermRepository {
	return NewBunTermRepositoryWithCache(db, nil, nil)
}

// NewBunTermRepositoryWithCache creates a term repository with caching services.
func NewBunTermRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunTermRepository {
	base := NewTermRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunTermRepository{repo: base}
}

func (r *BunTermRepository) Create(ctx context.Context, term *Term) (*Term, error) {
	if term == nil {
		return nil, ErrNameRequired
	}
	record := cloneTerm(term)
	if err := record.Normalize(); err != nil {
		return nil, err
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return created, nil
}

func (r *BunTermRepository) GetByID(ctx context.Context, id uuid.UUID) (*Term, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunTermRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Term, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}),
		repository.SelectPaginate(len(ids), 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "terms")
	}
	return orderByIDs(ids, records), nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "term", Key: key}
	}
	return fmt.Errorf("term repository error: %w", err)
}
