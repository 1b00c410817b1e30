package taxonomy

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-config-i18n/internal/identity"
)

var (
	ErrVocabularyRequired = errors.New("taxonomy: vocabulary is required")
	ErrNameRequired       = errors.New("taxonomy: name is required")
)

// Term is a taxonomy term. Translations maps a language code to the term
// name in that language.
type Term struct {
	bun.BaseModel `bun:"table:taxonomy_terms,alias:tt"`

	ID           uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Vocabulary   string            `bun:"vocabulary,notnull" json:"vocabulary"`
	Name         string            `bun:"name,notnull" json:"name"`
	Published    bool              `bun:"published,notnull" json:"published"`
	Translations map[string]string `bun:"translations,type:jsonb" json:"translations,omitempty"`
	CreatedAt    time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TermReference points at a term from a referencing field.
type TermReference struct {
	TargetID uuid.UUID `json:"target_id"`
}

// Label returns the term name in langcode, falling back to the default name.
func (t *Term) Label(langcode string) string {
	if t == nil {
		return ""
	}
	code := strings.ToLower(strings.TrimSpace(langcode))
	if name, ok := t.Translations[code]; ok && strings.TrimSpace(name) != "" {
		return name
	}
	return t.Name
}

// Normalize validates the term and assigns a deterministic ID derived from
// vocabulary and name when none is set.
func (t *Term) Normalize() error {
	t.Vocabulary = strings.TrimSpace(t.Vocabulary)
	t.Name = strings.TrimSpace(t.Name)
	if t.Vocabulary == "" {
		return ErrVocabularyRequired
	}
	if t.Name == "" {
		return ErrNameRequired
	}
	if len(t.Translations) > 0 {
		normalized := make(map[string]string, len(t.Translations))
		for code, name := range t.Translations {
			code = strings.ToLower(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			normalized[code] = name
		}
		t.Translations = normalized
	}
	if t.ID == uuid.Nil {
		t.ID = identity.TermUUID(t.Vocabulary, t.Name)
	}
	return nil
}

// NotFoundError is returned when a term does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func cloneTerm(term *Term) *Term {
	if term == nil {
		return nil
	}
	cloned := *term
	cloned.Translations = maps.Clone(term.Translations)
	return &cloned
}
