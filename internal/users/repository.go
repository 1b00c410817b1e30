package users

import (
	"context"
	"fmt"
	"slices"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-config-i18n/internal/identity"
)

// Repository stores user accounts keyed by UID.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUID(ctx context.Context, uid int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// NewUserRecordRepository creates the go-repository-bun repository for users.
func NewUserRecordRepository(db *bun.DB) repository.Repository[*User] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			u.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(u *User) string {
			return u.ID.String()
		},
	})
}

// BunRepository persists users through go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*User]
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository constructs a Bun-backed user repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewUserRecordRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, user *User) (*User, error) {
	record := *user
	record.ID = identity.UserUUID(record.UID)
	created, err := r.repo.Create(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("user repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) GetByUID(ctx context.Context, uid int64) (*User, error) {
	record, err := r.repo.GetByID(ctx, identity.UserUUID(uid).String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{UID: uid}
		}
		return nil, fmt.Errorf("user repository error: %w", err)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*User, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.uid ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("user repository error: %w", err)
	}
	return records, nil
}

type memoryRepository struct {
	mu    sync.RWMutex
	byUID map[int64]*User
}

// NewMemoryRepository constructs an in-memory user repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byUID: make(map[int64]*User)}
}

func (m *memoryRepository) Create(_ context.Context, user *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byUID[user.UID]; exists {
		return nil, fmt.Errorf("users: uid %d already exists", user.UID)
	}
	record := *user
	record.ID = identity.UserUUID(record.UID)
	m.byUID[record.UID] = &record
	out := record
	return &out, nil
}

func (m *memoryRepository) GetByUID(_ context.Context, uid int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byUID[uid]
	if !ok {
		return nil, &NotFoundError{UID: uid}
	}
	out := *record
	return &out, nil
}

func (m *memoryRepository) List(_ context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uids := make([]int64, 0, len(m.byUID))
	for uid := range m.byUID {
		uids = append(uids, uid)
	}
	slices.Sort(uids)
	out := make([]*User, 0, len(uids))
	for _, uid := range uids {
		record := *m.byUID[uid]
		out = append(out, &record)
	}
	return out, nil
}
