package stringlookup

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps translations in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*LocaleString
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]*LocaleString),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Set stores a global translation. It is a shorthand for Save used by
// fixtures and tests.
func (m *MemoryStore) Set(language, source, msgContext, translation string) {
	_, _ = m.Save(context.Background(), LocaleString{
		Language:    language,
		Source:      source,
		Context:     msgContext,
		Translation: translation,
	})
}

// Save inserts or replaces the translation identified by entry's scope.
func (m *MemoryStore) Save(_ context.Context, entry LocaleString) (*LocaleString, error) {
	if err := entry.Normalize(); err != nil {
		return nil, err
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[entry.ID]; ok {
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	stored := entry
	m.entries[entry.ID] = &stored
	copied := stored
	return &copied, nil
}

// Delete removes the translation identified by entry's scope.
func (m *MemoryStore) Delete(_ context.Context, entry LocaleString) error {
	if err := entry.Normalize(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return &NotFoundError{Resource: "locale_string", Key: entry.ID.String()}
	}
	delete(m.entries, entry.ID)
	return nil
}

// ListByLanguage returns the translations of language ordered by name,
// context and source.
func (m *MemoryStore) ListByLanguage(_ context.Context, language string) ([]*LocaleString, error) {
	language = normalizeLanguage(language)

	m.mu.RLock()
	out := make([]*LocaleString, 0, len(m.entries))
	for _, entry := range m.entries {
		if entry.Language != language {
			continue
		}
		copied := *entry
		out = append(out, &copied)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Context != out[j].Context {
			return out[i].Context < out[j].Context
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

// Lookup resolves source for the named object, preferring a translation
// scoped to name over a global one.
func (m *MemoryStore) Lookup(_ context.Context, name, language, source, msgContext string) (string, bool) {
	if source == "" {
		return "", false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, scope := range lookupScopes(name) {
		key := LocaleString{Name: scope, Language: language, Source: source, Context: msgContext}
		if key.Normalize() != nil {
			return "", false
		}
		if entry, ok := m.entries[key.ID]; ok && entry.Translation != "" {
			return entry.Translation, true
		}
	}
	return "", false
}

// lookupScopes lists the names searched for a config object, most specific
// first.
func lookupScopes(name string) []string {
	if name == "" {
		return []string{""}
	}
	return []string{name, ""}
}
