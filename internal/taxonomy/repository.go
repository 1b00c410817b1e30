package taxonomy

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TermRepository stores taxonomy terms.
type TermRepository interface {
	Create(ctx context.Context, term *Term) (*Term, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Term, error)
	// ListByIDs returns the terms that exist among ids, in ids order.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Term, error)
}

// NewTermRecordRepository creates the go-repository-bun repository for terms.
func NewTermRecordRepository(db *bun.DB) repository.Repository[*Term] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Term]{
		NewRecord: func() *Term { return &Term{} },
		GetID: func(t *Term) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Term, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *Term) string {
			return t.ID.String()
		},
	})
}

func orderByIDs(ids []uuid.UUID, records []*Term) []*Term {
	index := make(map[uuid.UUID]*Term, len(records))
	for _, record := range records {
		if record != nil {
			index[record.ID] = record
		}
	}
	out := make([]*Term, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if record, ok := index[id]; ok {
			out = append(out, record)
		}
	}
	return out
}
