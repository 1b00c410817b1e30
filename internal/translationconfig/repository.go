package translationconfig

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// ErrSettingsNotFound indicates that translation settings have not been configured yet.
var ErrSettingsNotFound = errors.New("translationconfig: settings not found")

// Settings capture the runtime translation policy.
type Settings struct {
	TranslationsEnabled bool
	// BaseLanguage is the language configuration is authored in; overlays are
	// only computed from it.
	BaseLanguage string
	// Languages lists the target languages; empty allows any target.
	Languages []string
}

// Normalized returns a copy with trimmed, lowercased and de-duplicated
// language codes.
func (s Settings) Normalized() Settings {
	out := Settings{
		TranslationsEnabled: s.TranslationsEnabled,
		BaseLanguage:        normalizeLanguage(s.BaseLanguage),
	}
	for _, code := range s.Languages {
		code = normalizeLanguage(code)
		if code == "" || slices.Contains(out.Languages, code) {
			continue
		}
		out.Languages = append(out.Languages, code)
	}
	return out
}

// Equal reports whether two settings describe the same policy.
func (s Settings) Equal(other Settings) bool {
	a, b := s.Normalized(), other.Normalized()
	return a.TranslationsEnabled == b.TranslationsEnabled &&
		a.BaseLanguage == b.BaseLanguage &&
		slices.Equal(a.Languages, b.Languages)
}

// Repository persists translation settings and emits change notifications.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
	Delete(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates settings change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports settings mutations to subscribers.
type ChangeEvent struct {
	Type     ChangeType
	Settings Settings
}

func newChangeEvent(changeType ChangeType, settings Settings) ChangeEvent {
	return ChangeEvent{
		Type:     changeType,
		Settings: settings,
	}
}

func normalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
