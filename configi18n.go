package configi18n

import (
	"context"

	"github.com/goliatone/go-config-i18n/internal/commands/i18ncmd"
	"github.com/goliatone/go-config-i18n/internal/configtranslation"
	"github.com/goliatone/go-config-i18n/internal/configtree"
	"github.com/goliatone/go-config-i18n/internal/di"
	"github.com/goliatone/go-config-i18n/internal/feeds"
	"github.com/goliatone/go-config-i18n/internal/migrations"
	"github.com/goliatone/go-config-i18n/internal/stringlookup"
	"github.com/goliatone/go-config-i18n/internal/taxonomy"
	"github.com/goliatone/go-config-i18n/internal/translationconfig"
	"github.com/goliatone/go-config-i18n/internal/users"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// ConfigNode exports the configuration tree node.
type ConfigNode = configtree.Node

// Definition exports the scalar definition carried by config nodes.
type Definition = configtree.Definition

// TranslationOptions exports the language pair of an overlay request.
type TranslationOptions = configtranslation.Options

// Overlay exports the sparse translation overlay.
type Overlay = configtranslation.Overlay

// Policy exports the translation policy contract.
type Policy = configtranslation.Policy

// TranslationService exports the config overlay service.
type TranslationService = *configtranslation.Service

// StringLookup exports the string lookup collaborator contract.
type StringLookup = interfaces.StringLookup

// StringStore exports the translation string store contract.
type StringStore = stringlookup.Store

// LocaleString exports the stored translation record.
type LocaleString = stringlookup.LocaleString

// TranslationSettings exports the persisted translation settings.
type TranslationSettings = translationconfig.Settings

// Term exports the taxonomy term record.
type Term = taxonomy.Term

// TermReference exports a reference to a taxonomy term.
type TermReference = taxonomy.TermReference

// CategoryFormatter exports the RSS category formatter.
type CategoryFormatter = *feeds.CategoryFormatter

// FeedElement exports a rendered feed element.
type FeedElement = feeds.Element

// FeedItem exports the feed item that category elements attach to.
type FeedItem = feeds.Item

// User exports the user account record.
type User = users.User

// UserInstaller exports the default user installer.
type UserInstaller = *users.Installer

// Commands exports the command handler set.
type Commands = *i18ncmd.HandlerSet

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migrate creates the SQL tables used by the module straight from the Bun models.
func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

// MigrateUp applies the embedded versioned migrations. Memory storage has no
// schema, so it is a no-op there.
func (m *Module) MigrateUp(ctx context.Context) error {
	runner, err := m.migrationRunner()
	if err != nil || runner == nil {
		return err
	}
	return runner.Up(ctx)
}

// MigrateDown reverts the embedded versioned migrations.
func (m *Module) MigrateDown(ctx context.Context) error {
	runner, err := m.migrationRunner()
	if err != nil || runner == nil {
		return err
	}
	return runner.Down(ctx)
}

func (m *Module) migrationRunner() (*migrations.Runner, error) {
	db := m.container.DB()
	if db == nil {
		return nil, nil
	}
	fsys, err := Migrations()
	if err != nil {
		return nil, err
	}
	return migrations.NewRunner(db, fsys), nil
}

// Start loads persisted settings and runs the install hooks enabled in config.
func (m *Module) Start(ctx context.Context) error {
	return m.container.Start(ctx)
}

// Close releases the resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Translation returns the config overlay service.
func (m *Module) Translation() TranslationService {
	return m.container.TranslationService()
}

// Overlay computes the overlay of node for opts.
func (m *Module) Overlay(ctx context.Context, name string, node *ConfigNode, opts TranslationOptions) Overlay {
	return m.container.TranslationService().Overlay(ctx, name, node, opts)
}

// Translate builds a config tree from schema and data, computes its overlay
// and returns data with the overlay applied.
func (m *Module) Translate(ctx context.Context, name string, schema, data map[string]any, opts TranslationOptions) (map[string]any, Overlay, error) {
	return m.container.TranslationService().Translate(ctx, name, schema, data, opts)
}

// Strings returns the translation string store.
func (m *Module) Strings() StringStore {
	return m.container.StringStore()
}

// Settings returns the live translation settings.
func (m *Module) Settings() TranslationSettings {
	if m == nil || m.container == nil {
		return TranslationSettings{}
	}
	return m.container.TranslationState().Settings()
}

// UpdateSettings persists settings; running modules pick the change up
// through their settings watcher.
func (m *Module) UpdateSettings(ctx context.Context, settings TranslationSettings) (TranslationSettings, error) {
	return m.container.SettingsRepository().Upsert(ctx, settings)
}

// TranslationsEnabled reports whether translations are currently enabled.
func (m *Module) TranslationsEnabled() bool {
	if m == nil || m.container == nil {
		return false
	}
	return m.container.TranslationState().Enabled()
}

// Terms returns the taxonomy term repository.
func (m *Module) Terms() taxonomy.TermRepository {
	return m.container.TermRepository()
}

// Categories returns the feed category formatter, nil when feeds are disabled.
func (m *Module) Categories() CategoryFormatter {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CategoryFormatter()
}

// Users returns the user repository.
func (m *Module) Users() users.Repository {
	return m.container.UserRepository()
}

// Installer returns the default user installer, nil when users are disabled.
func (m *Module) Installer() UserInstaller {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.UserInstaller()
}

// Commands returns the command handlers.
func (m *Module) Commands() Commands {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands()
}

// Apply merges overlay over source without mutating either.
func Apply(source map[string]any, overlay Overlay) map[string]any {
	return configtranslation.Apply(source, overlay)
}

// FromSchema builds a config tree from a JSON Schema and a data document.
func FromSchema(schema, data map[string]any) (*ConfigNode, error) {
	return configtree.FromSchema(schema, data)
}
