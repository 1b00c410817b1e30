package translationconfig

import (
	"context"
	"errors"

	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// Load seeds state from repo. Missing settings leave state untouched.
func Load(ctx context.Context, repo Repository, state *State) error {
	if repo == nil || state == nil {
		return nil
	}
	settings, err := repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return nil
		}
		return err
	}
	state.Apply(settings)
	return nil
}

// Watch subscribes to repo and applies every change to state until ctx is
// cancelled. Deleting the settings restores fallback. The returned channel
// is closed once the watcher stops.
func Watch(ctx context.Context, repo Repository, state *State, fallback Settings, logger interfaces.Logger) (<-chan struct{}, error) {
	done := make(chan struct{})
	if repo == nil || state == nil {
		close(done)
		return done, nil
	}
	events, err := repo.Subscribe(ctx)
	if err != nil {
		close(done)
		return done, err
	}
	logger = logging.Ensure(logger)

	go func() {
		defer close(done)
		for evt := range events {
			switch evt.Type {
			case ChangeDeleted:
				state.Apply(fallback)
			default:
				state.Apply(evt.Settings)
			}
			logger.Debug("translation.settings.applied", "change", string(evt.Type))
		}
	}()
	return done, nil
}
