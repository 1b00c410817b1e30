package stringlookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-config-i18n/internal/identity"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

var (
	ErrLanguageRequired = errors.New("stringlookup: language is required")
	ErrSourceRequired   = errors.New("stringlookup: source string is required")
)

// LocaleString is a stored translation of one source string.
//
// Name scopes the translation to a single configuration object; an empty
// Name makes the translation available to every object.
type LocaleString struct {
	bun.BaseModel `bun:"table:locale_strings,alias:ls"`

	ID          uuid.UUID `bun:",pk,type:uuid"                                  json:"id"`
	Name        string    `bun:"name,notnull,default:''"                        json:"name,omitempty"`
	Language    string    `bun:"language,notnull"                               json:"language"`
	Context     string    `bun:"context,notnull,default:''"                     json:"context,omitempty"`
	Source      string    `bun:"source,notnull"                                 json:"source"`
	Translation string    `bun:"translation,notnull"                            json:"translation"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp"  json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp"  json:"updated_at"`
}

// Normalize trims the scoping fields, lowercases the language and assigns
// the deterministic identifier. Source, Context and Translation are kept
// verbatim.
func (s *LocaleString) Normalize() error {
	if s == nil {
		return ErrSourceRequired
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Language = normalizeLanguage(s.Language)
	if s.Language == "" {
		return ErrLanguageRequired
	}
	if s.Source == "" {
		return ErrSourceRequired
	}
	s.ID = identity.LocaleStringUUID(s.Name, s.Language, s.Context, s.Source)
	return nil
}

// Store persists translations and resolves them for configuration objects.
type Store interface {
	interfaces.StringLookup
	Save(ctx context.Context, entry LocaleString) (*LocaleString, error)
	Delete(ctx context.Context, entry LocaleString) error
	ListByLanguage(ctx context.Context, language string) ([]*LocaleString, error)
}

// NotFoundError is returned when a stored string cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func normalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
