package stringlookup

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// NewLocaleStringRepository creates the go-repository-bun repository for
// locale_strings.
func NewLocaleStringRepository(db *bun.DB) repository.Repository[*LocaleString] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LocaleString]{
		NewRecord: func() *LocaleString { return &LocaleString{} },
		GetID: func(entry *LocaleString) uuid.UUID {
			return entry.ID
		},
		SetID: func(entry *LocaleString, id uuid.UUID) {
			entry.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(entry *LocaleString) string {
			return entry.ID.String()
		},
	})
}

// BunStore persists translations through Bun with optional caching.
type BunStore struct {
	repo   repository.Repository[*LocaleString]
	logger interfaces.Logger
	now    func() time.Time
}

var _ Store = (*BunStore)(nil)

// BunStoreOption configures a BunStore.
type BunStoreOption func(*BunStore)

// WithStoreLogger sets the logger used to report lookup failures.
func WithStoreLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		s.logger = logging.Ensure(logger)
	}
}

// WithStoreClock overrides the timestamp source.
func WithStoreClock(now func() time.Time) BunStoreOption {
	return func(s *BunStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewBunStore creates a store without caching.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache creates a store whose reads go through the
// go-repository-cache layer when both cache arguments are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...BunStoreOption) *BunStore {
	base := NewLocaleStringRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	store := &BunStore{
		repo:   base,
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Save inserts or updates the translation identified by entry's scope.
func (s *BunStore) Save(ctx context.Context, entry LocaleString) (*LocaleString, error) {
	if err := entry.Normalize(); err != nil {
		return nil, err
	}
	now := s.now()
	entry.UpdatedAt = now

	existing, err := s.repo.GetByID(ctx, entry.ID.String())
	switch {
	case err == nil:
		entry.CreatedAt = existing.CreatedAt
		updated, err := s.repo.Update(ctx, &entry,
			repository.UpdateByID(entry.ID.String()),
			repository.UpdateColumns("translation", "updated_at"),
		)
		if err != nil {
			return nil, mapRepositoryError(err, entry.ID.String())
		}
		return updated, nil
	case isNotFound(err):
		entry.CreatedAt = now
		created, err := s.repo.Create(ctx, &entry)
		if err != nil {
			return nil, mapRepositoryError(err, entry.ID.String())
		}
		return created, nil
	default:
		return nil, mapRepositoryError(err, entry.ID.String())
	}
}

// Delete removes the translation identified by entry's scope.
func (s *BunStore) Delete(ctx context.Context, entry LocaleString) error {
	if err := entry.Normalize(); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, entry.ID.String()); err != nil {
		return mapRepositoryError(err, entry.ID.String())
	}
	return s.repo.Delete(ctx, &LocaleString{ID: entry.ID})
}

// ListByLanguage returns the stored translations of language.
func (s *BunStore) ListByLanguage(ctx context.Context, language string) ([]*LocaleString, error) {
	language = normalizeLanguage(language)
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.language = ?", language).
				OrderExpr("?TableAlias.name ASC, ?TableAlias.context ASC, ?TableAlias.source ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, language)
	}
	return records, nil
}

// Lookup resolves source for the named object, preferring a translation
// scoped to name over a global one. Storage errors are logged and reported
// as a miss.
func (s *BunStore) Lookup(ctx context.Context, name, language, source, msgContext string) (string, bool) {
	if source == "" {
		return "", false
	}
	for _, scope := range lookupScopes(name) {
		key := LocaleString{Name: scope, Language: language, Source: source, Context: msgContext}
		if key.Normalize() != nil {
			return "", false
		}
		record, err := s.repo.GetByID(ctx, key.ID.String())
		if err != nil {
			if !isNotFound(err) {
				s.logger.Warn("lookup.store.read_failed", "error", err, "language", key.Language)
			}
			continue
		}
		if record != nil && record.Translation != "" {
			return record.Translation, true
		}
	}
	return "", false
}

func isNotFound(err error) bool {
	return err != nil && goerrors.IsCategory(err, repository.CategoryDatabaseNotFound)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return &NotFoundError{Resource: "locale_string", Key: key}
	}
	return fmt.Errorf("locale_string repository error: %w", err)
}
