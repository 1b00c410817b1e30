package translationconfig

import (
	"slices"
	"sync/atomic"
)

// State is a concurrency-safe snapshot of the active translation settings.
// Its CanTranslate method is used as the overlay translation policy.
type State struct {
	enabled  atomic.Bool
	settings atomic.Pointer[Settings]
}

// NewState constructs a state seeded with settings.
func NewState(settings Settings) *State {
	st := &State{}
	st.Apply(settings)
	return st
}

// Apply replaces the active settings.
func (s *State) Apply(settings Settings) {
	if s == nil {
		return
	}
	normalized := settings.Normalized()
	s.settings.Store(&normalized)
	s.enabled.Store(normalized.TranslationsEnabled)
}

// Settings returns a copy of the active settings.
func (s *State) Settings() Settings {
	if s == nil {
		return Settings{}
	}
	current := s.settings.Load()
	if current == nil {
		return Settings{}
	}
	out := *current
	out.Languages = slices.Clone(current.Languages)
	return out
}

// Enabled reports whether translations are enabled globally.
func (s *State) Enabled() bool {
	if s == nil {
		return false
	}
	return s.enabled.Load()
}

// SetEnabled toggles translations without touching the languages.
func (s *State) SetEnabled(enabled bool) {
	if s == nil {
		return
	}
	settings := s.Settings()
	settings.TranslationsEnabled = enabled
	s.Apply(settings)
}

// BaseLanguage returns the configured base language.
func (s *State) BaseLanguage() string {
	return s.Settings().BaseLanguage
}

// CanTranslate permits a request when translations are enabled, source is
// the base language, target differs from source and target is one of the
// configured languages (any target when none are configured).
func (s *State) CanTranslate(source, target string) bool {
	if !s.Enabled() {
		return false
	}
	settings := s.Settings()
	source = normalizeLanguage(source)
	target = normalizeLanguage(target)
	if settings.BaseLanguage == "" || source != settings.BaseLanguage {
		return false
	}
	if target == "" || target == source {
		return false
	}
	if len(settings.Languages) > 0 && !slices.Contains(settings.Languages, target) {
		return false
	}
	return true
}
