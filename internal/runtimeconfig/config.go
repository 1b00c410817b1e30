package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	urlkit "github.com/goliatone/go-urlkit"
	"golang.org/x/text/language"
)

var (
	ErrDefaultLocaleInvalid    = errors.New("i18n config: default locale must be a valid language tag")
	ErrBaseLanguageRequired    = errors.New("i18n config: base language is required when translation is enabled")
	ErrLanguageInvalid         = errors.New("i18n config: translation language is invalid")
	ErrStorageProviderUnknown  = errors.New("i18n config: storage provider is invalid")
	ErrStorageDSNRequired      = errors.New("i18n config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid         = errors.New("i18n config: cache ttl must be zero or positive")
	ErrFeedsFeatureRequired    = errors.New("i18n config: feeds feature must be enabled to configure feed routes")
	ErrFeedsGroupRequired      = errors.New("i18n config: feeds default group is required when routes are configured")
	ErrLoggingProviderRequired = errors.New("i18n config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("i18n config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("i18n config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("i18n config: logging format is invalid")
	ErrUsersAdminNameRequired  = errors.New("i18n config: admin name is required when users feature is enabled")
	errMergeConfig             = errors.New("i18n config: merge defaults")
)

// Storage providers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config aggregates feature flags and adapter bindings for the module.
type Config struct {
	DefaultLocale string            `env:"DEFAULT_LOCALE"`
	Translation   TranslationConfig `envPrefix:"TRANSLATION_"`
	Storage       StorageConfig     `envPrefix:"STORAGE_"`
	Cache         CacheConfig       `envPrefix:"CACHE_"`
	Feeds         FeedsConfig       `envPrefix:"FEEDS_"`
	Users         UsersConfig       `envPrefix:"USERS_"`
	Features      Features          `envPrefix:"FEATURES_"`
	Logging       LoggingConfig     `envPrefix:"LOGGING_"`
}

// TranslationConfig seeds the translation settings used when none are persisted.
type TranslationConfig struct {
	Enabled      bool     `env:"ENABLED"`
	BaseLanguage string   `env:"BASE_LANGUAGE"`
	Languages    []string `env:"LANGUAGES" envSeparator:","`
	// MessagesDir holds TOML message files loaded into the bundle lookup.
	MessagesDir string `env:"MESSAGES_DIR"`
}

// StorageConfig selects where strings, settings, terms and users live.
type StorageConfig struct {
	Provider string `env:"PROVIDER"`
	DSN      string `env:"DSN"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `env:"ENABLED"`
	DefaultTTL time.Duration `env:"DEFAULT_TTL"`
}

// FeedsConfig captures routing for term URLs in feeds.
type FeedsConfig struct {
	RouteConfig  *urlkit.Config
	DefaultGroup string            `env:"DEFAULT_GROUP"`
	LocaleGroups map[string]string `env:"LOCALE_GROUPS"`
	Route        string            `env:"ROUTE"`
}

// UsersConfig configures the default account install.
type UsersConfig struct {
	AdminName      string `env:"ADMIN_NAME"`
	InstallOnStart bool   `env:"INSTALL_ON_START"`
}

// Features toggles module functionality.
type Features struct {
	Logger bool `env:"LOGGER"`
	Feeds  bool `env:"FEEDS"`
	Users  bool `env:"USERS"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS" envSeparator:","`
}

// DefaultConfig returns the defaults used by New when no config is supplied.
func DefaultConfig() Config {
	cfg := defaultValues()
	cfg.Translation.Enabled = true
	cfg.Cache.Enabled = true
	cfg.Features.Users = true
	return cfg
}

// defaultValues holds every non-boolean default. Booleans stay false so a
// merge never flips an explicit false.
func defaultValues() Config {
	return Config{
		DefaultLocale: "en",
		Translation: TranslationConfig{
			BaseLanguage: "en",
		},
		Storage: StorageConfig{
			Provider: StorageMemory,
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Feeds: FeedsConfig{
			Route: "term",
		},
		Users: UsersConfig{
			AdminName: "placeholder-for-uid-1",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
		},
	}
}

// WithDefaults fills the empty fields of cfg from the defaults. Boolean
// toggles are kept as given.
func WithDefaults(cfg Config) (Config, error) {
	if err := mergo.Merge(&cfg, defaultValues()); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errMergeConfig, err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables prefixed with prefix (for example
// "I18N_") on base.
func FromEnv(base Config, prefix string) (Config, error) {
	cfg := base
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: prefix}); err != nil {
		return Config{}, fmt.Errorf("i18n config: parse env: %w", err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if err := validation.Validate(cfg.DefaultLocale, validation.Required, validation.By(languageTag)); err != nil {
		return fmt.Errorf("%w: %q", ErrDefaultLocaleInvalid, cfg.DefaultLocale)
	}
	if cfg.Translation.Enabled && strings.TrimSpace(cfg.Translation.BaseLanguage) == "" {
		return ErrBaseLanguageRequired
	}
	if err := validation.ValidateStruct(&cfg.Translation,
		validation.Field(&cfg.Translation.BaseLanguage, validation.By(languageTag)),
		validation.Field(&cfg.Translation.Languages, validation.Each(validation.By(languageTag))),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrLanguageInvalid, err)
	}

	switch provider := normalizeProvider(cfg.Storage.Provider); provider {
	case "", StorageMemory:
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	if cfg.Feeds.RouteConfig != nil {
		if !cfg.Features.Feeds {
			return ErrFeedsFeatureRequired
		}
		if strings.TrimSpace(cfg.Feeds.DefaultGroup) == "" {
			return ErrFeedsGroupRequired
		}
	}

	if cfg.Features.Users && strings.TrimSpace(cfg.Users.AdminName) == "" {
		return ErrUsersAdminNameRequired
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func languageTag(value any) error {
	code, _ := value.(string)
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if _, err := language.Parse(code); err != nil {
		return validation.NewError("i18n.config.language_invalid", "must be a valid language tag")
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
