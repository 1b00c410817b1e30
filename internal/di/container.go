package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-config-i18n/internal/commands/i18ncmd"
	"github.com/goliatone/go-config-i18n/internal/configtranslation"
	"github.com/goliatone/go-config-i18n/internal/feeds"
	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/internal/logging/gologger"
	"github.com/goliatone/go-config-i18n/internal/runtimeconfig"
	"github.com/goliatone/go-config-i18n/internal/stringlookup"
	"github.com/goliatone/go-config-i18n/internal/taxonomy"
	"github.com/goliatone/go-config-i18n/internal/translationconfig"
	"github.com/goliatone/go-config-i18n/internal/users"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// ErrDatabaseRequired is returned by Migrate when no database is configured.
var ErrDatabaseRequired = errors.New("di: database is required")

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	messagesFS  fs.FS
	extraLookup interfaces.StringLookup

	stringStore  stringlookup.Store
	bundle       *stringlookup.BundleLookup
	settingsRepo translationconfig.Repository
	state        *translationconfig.State
	translation  *configtranslation.Service

	termRepo     taxonomy.TermRepository
	routeManager *urlkit.RouteManager
	urlResolver  feeds.URLResolver
	formatter    *feeds.CategoryFormatter

	userRepo  users.Repository
	installer *users.Installer

	commandRegistry i18ncmd.CommandRegistry
	handlers        *i18ncmd.HandlerSet

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
	watchDone   <-chan struct{}
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB uses db for every SQL-backed repository. The caller keeps
// ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithStringLookup adds a lookup consulted before the built-in stores.
func WithStringLookup(lookup interfaces.StringLookup) Option {
	return func(c *Container) {
		c.extraLookup = lookup
	}
}

// WithMessagesFS loads go-i18n message files from fsys instead of
// Translation.MessagesDir.
func WithMessagesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.messagesFS = fsys
	}
}

// WithURLResolver overrides the term URL resolver built from Feeds config.
func WithURLResolver(resolver feeds.URLResolver) Option {
	return func(c *Container) {
		c.urlResolver = resolver
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg i18ncmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureTranslation(); err != nil {
		c.closeOwned()
		return nil, err
	}
	c.configureFeeds()
	c.configureUsers()
	if err := c.configureCommands(); err != nil {
		c.closeOwned()
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "").Info("container.configured",
		"storage", c.storageName(),
		"cache", c.cacheService != nil,
		"feeds", c.formatter != nil,
		"users", c.installer != nil,
	)
	return c, nil
}

func (c *Container) storageName() string {
	if c.bunDB == nil {
		return runtimeconfig.StorageMemory
	}
	return c.bunDB.Dialect().Name().String()
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure logger: %w", err)
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		return nil
	}
	dsn := strings.TrimSpace(c.Config.Storage.DSN)
	switch strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) {
	case runtimeconfig.StorageSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return fmt.Errorf("di: open sqlite: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		c.ownsDB = true
	case runtimeconfig.StoragePostgres:
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return fmt.Errorf("di: open postgres: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, pgdialect.New())
		c.ownsDB = true
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		c.stringStore = stringlookup.NewMemoryStore()
		c.settingsRepo = translationconfig.NewMemoryRepository()
		c.termRepo = taxonomy.NewMemoryTermRepository()
		c.userRepo = users.NewMemoryRepository()
		return
	}

	lookupLogger := logging.LookupLogger(c.loggerProvider)
	c.stringStore = stringlookup.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer,
		stringlookup.WithStoreLogger(lookupLogger),
	)
	c.settingsRepo = translationconfig.NewBunRepository(c.bunDB)
	c.termRepo = taxonomy.NewBunTermRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.userRepo = users.NewBunRepository(c.bunDB)
}

func (c *Container) configureTranslation() error {
	cfg := c.Config.Translation
	c.state = translationconfig.NewState(c.fallbackSettings())

	lookups := stringlookup.Chain{}
	if c.extraLookup != nil {
		lookups = append(lookups, c.extraLookup)
	}
	lookups = append(lookups, c.stringStore)

	fsys := c.messagesFS
	if fsys == nil && strings.TrimSpace(cfg.MessagesDir) != "" {
		fsys = os.DirFS(strings.TrimSpace(cfg.MessagesDir))
	}
	if fsys != nil {
		base := cfg.BaseLanguage
		if strings.TrimSpace(base) == "" {
			base = c.Config.DefaultLocale
		}
		bundle, err := stringlookup.NewBundleLookup(base, logging.LookupLogger(c.loggerProvider))
		if err != nil {
			return err
		}
		if _, err := bundle.LoadFS(fsys, "."); err != nil {
			return fmt.Errorf("di: load messages: %w", err)
		}
		c.bundle = bundle
		lookups = append(lookups, bundle)
	}

	c.translation = configtranslation.NewService(lookups,
		configtranslation.WithPolicy(c.state.CanTranslate),
		configtranslation.WithLogger(logging.TranslationLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) fallbackSettings() translationconfig.Settings {
	return translationconfig.Settings{
		TranslationsEnabled: c.Config.Translation.Enabled,
		BaseLanguage:        c.Config.Translation.BaseLanguage,
		Languages:           c.Config.Translation.Languages,
	}
}

func (c *Container) configureFeeds() {
	if !c.Config.Features.Feeds {
		return
	}
	feedsCfg := c.Config.Feeds
	if c.urlResolver == nil && feedsCfg.RouteConfig != nil {
		c.routeManager = urlkit.NewRouteManager(feedsCfg.RouteConfig)
		c.urlResolver = feeds.NewURLKitResolver(feeds.URLKitResolverOptions{
			Manager:      c.routeManager,
			DefaultGroup: feedsCfg.DefaultGroup,
			LocaleGroups: feedsCfg.LocaleGroups,
			Route:        feedsCfg.Route,
		})
	}

	opts := []feeds.FormatterOption{feeds.WithLogger(logging.FeedsLogger(c.loggerProvider))}
	if c.urlResolver != nil {
		opts = append(opts, feeds.WithURLResolver(c.urlResolver))
	}
	c.formatter = feeds.NewCategoryFormatter(c.termRepo, opts...)
}

func (c *Container) configureUsers() {
	if !c.Config.Features.Users {
		return
	}
	c.installer = users.NewInstaller(c.userRepo, c.Config.DefaultLocale,
		users.WithAdminName(c.Config.Users.AdminName),
		users.WithInstallerLogger(logging.UsersLogger(c.loggerProvider)),
	)
}

func (c *Container) configureCommands() error {
	features := c.Config.Features
	set, err := i18ncmd.RegisterCommands(c.commandRegistry, i18ncmd.Dependencies{
		Users:       c.userRepo,
		Strings:     c.stringStore,
		Settings:    c.settingsRepo,
		Translation: c.translation,
	}, c.loggerProvider, i18ncmd.FeatureGates{
		UsersEnabled: func() bool { return features.Users },
	})
	if err != nil {
		return err
	}
	c.handlers = set
	return nil
}

// Migrate creates the SQL tables used by the Bun repositories.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil {
		return ErrDatabaseRequired
	}
	models := []any{
		(*stringlookup.LocaleString)(nil),
		translationconfig.SettingsModel(),
		(*taxonomy.Term)(nil),
		(*users.User)(nil),
	}
	for _, model := range models {
		if _, err := c.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("di: create table: %w", err)
		}
	}
	return nil
}

// Start loads persisted translation settings, keeps them in sync until
// Close, and installs the default users when configured.
func (c *Container) Start(ctx context.Context) error {
	if err := translationconfig.Load(ctx, c.settingsRepo, c.state); err != nil {
		return fmt.Errorf("di: load translation settings: %w", err)
	}

	c.watchMu.Lock()
	if c.watchCancel == nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		done, err := translationconfig.Watch(watchCtx, c.settingsRepo, c.state, c.fallbackSettings(),
			logging.TranslationLogger(c.loggerProvider))
		if err != nil {
			cancel()
			c.watchMu.Unlock()
			return err
		}
		c.watchCancel = cancel
		c.watchDone = done
	}
	c.watchMu.Unlock()

	if c.installer != nil && c.Config.Users.InstallOnStart {
		if _, err := c.installer.Install(ctx); err != nil {
			return fmt.Errorf("di: install users: %w", err)
		}
	}
	return nil
}

// Close stops the settings watcher and closes a database opened by the
// container.
func (c *Container) Close() error {
	c.watchMu.Lock()
	cancel, done := c.watchCancel, c.watchDone
	c.watchCancel, c.watchDone = nil, nil
	c.watchMu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
	return c.closeOwned()
}

func (c *Container) closeOwned() error {
	if c.ownsDB && c.bunDB != nil {
		c.ownsDB = false
		return c.bunDB.Close()
	}
	return nil
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// DB returns the Bun database, nil for memory storage.
func (c *Container) DB() *bun.DB { return c.bunDB }

// CacheService returns the repository cache service, nil when disabled.
func (c *Container) CacheService() repocache.CacheService { return c.cacheService }

// StringStore returns the translation string store.
func (c *Container) StringStore() stringlookup.Store { return c.stringStore }

// Bundle returns the message file lookup, nil when no messages are configured.
func (c *Container) Bundle() *stringlookup.BundleLookup { return c.bundle }

// SettingsRepository returns the translation settings repository.
func (c *Container) SettingsRepository() translationconfig.Repository { return c.settingsRepo }

// TranslationState returns the live translation settings.
func (c *Container) TranslationState() *translationconfig.State { return c.state }

// TranslationService returns the configuration overlay service.
func (c *Container) TranslationService() *configtranslation.Service { return c.translation }

// TermRepository returns the taxonomy term repository.
func (c *Container) TermRepository() taxonomy.TermRepository { return c.termRepo }

// CategoryFormatter returns the feed category formatter, nil when feeds are disabled.
func (c *Container) CategoryFormatter() *feeds.CategoryFormatter { return c.formatter }

// UserRepository returns the user repository.
func (c *Container) UserRepository() users.Repository { return c.userRepo }

// UserInstaller returns the default user installer, nil when users are disabled.
func (c *Container) UserInstaller() *users.Installer { return c.installer }

// Commands returns the command handlers.
func (c *Container) Commands() *i18ncmd.HandlerSet { return c.handlers }
