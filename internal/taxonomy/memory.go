package taxonomy

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryTermRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Term
}

// NewMemoryTermRepository constructs an in-memory term repository.
func NewMemoryTermRepository() TermRepository {
	return &memoryTermRepository{
		byID: make(map[uuid.UUID]*Term),
	}
}

func (m *memoryTermRepository) Create(_ context.Context, term *Term) (*Term, error) {
	cloned := cloneTerm(term)
	if err := cloned.Normalize(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[cloned.ID] = cloned
	return cloneTerm(cloned), nil
}

func (m *memoryTermRepository) GetByID(_ context.Context, id uuid.UUID) (*Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "term", Key: id.String()}
	}
	return cloneTerm(record), nil
}

func (m *memoryTermRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Term, 0, len(ids))
	for _, id := range ids {
		if record, ok := m.byID[id]; ok {
			records = append(records, cloneTerm(record))
		}
	}
	return orderByIDs(ids, records), nil
}
