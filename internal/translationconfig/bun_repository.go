package translationconfig

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

var errDatabaseRequired = errors.New("translationconfig: bun repository requires a database")

const settingsRowID = 1

// BunRepository persists translation settings in a single-row table.
type BunRepository struct {
	db          *bun.DB
	broadcaster *changeBroadcaster
	now         func() time.Time
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		broadcaster: newChangeBroadcaster(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the persisted translation settings.
func (r *BunRepository) Get(ctx context.Context) (Settings, error) {
	if r.db == nil {
		return Settings{}, errDatabaseRequired
	}
	model, err := r.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return modelToSettings(model), nil
}

// Upsert creates or updates the persisted translation settings. Writing
// unchanged settings does not emit an event.
func (r *BunRepository) Upsert(ctx context.Context, settings Settings) (Settings, error) {
	if r.db == nil {
		return Settings{}, errDatabaseRequired
	}

	existing, err := r.load(ctx)
	created := false
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			return Settings{}, err
		}
		created = true
	}

	model := modelFromSettings(settings)
	model.ID = settingsRowID
	model.UpdatedAt = r.now()

	if created {
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return Settings{}, err
		}
	} else {
		if modelToSettings(existing).Equal(settings) {
			return modelToSettings(existing), nil
		}
		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("translations_enabled", "base_language", "languages", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return Settings{}, err
		}
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(eventType, stored))
	return stored, nil
}

// Delete clears persisted settings.
func (r *BunRepository) Delete(ctx context.Context) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	model, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}
	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, Settings{}))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func (r *BunRepository) load(ctx context.Context) (*settingsModel, error) {
	var model settingsModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", settingsRowID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &model, nil
}

type settingsModel struct {
	bun.BaseModel `bun:"table:i18n_settings"`

	ID                  int       `bun:",pk"`
	TranslationsEnabled bool      `bun:"translations_enabled"`
	BaseLanguage        string    `bun:"base_language"`
	Languages           string    `bun:"languages"`
	UpdatedAt           time.Time `bun:"updated_at"`
}

func modelFromSettings(settings Settings) settingsModel {
	normalized := settings.Normalized()
	return settingsModel{
		TranslationsEnabled: normalized.TranslationsEnabled,
		BaseLanguage:        normalized.BaseLanguage,
		Languages:           strings.Join(normalized.Languages, ","),
	}
}

func modelToSettings(model *settingsModel) Settings {
	if model == nil {
		return Settings{}
	}
	settings := Settings{
		TranslationsEnabled: model.TranslationsEnabled,
		BaseLanguage:        model.BaseLanguage,
	}
	if strings.TrimSpace(model.Languages) != "" {
		settings.Languages = strings.Split(model.Languages, ",")
	}
	return settings.Normalized()
}

// SettingsModel returns the Bun model backing the settings table.
func SettingsModel() any {
	return (*settingsModel)(nil)
}
