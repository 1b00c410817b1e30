package configi18n

import "github.com/goliatone/go-config-i18n/internal/runtimeconfig"

var (
	ErrDefaultLocaleInvalid    = runtimeconfig.ErrDefaultLocaleInvalid
	ErrBaseLanguageRequired    = runtimeconfig.ErrBaseLanguageRequired
	ErrLanguageInvalid         = runtimeconfig.ErrLanguageInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrFeedsFeatureRequired    = runtimeconfig.ErrFeedsFeatureRequired
	ErrFeedsGroupRequired      = runtimeconfig.ErrFeedsGroupRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrUsersAdminNameRequired  = runtimeconfig.ErrUsersAdminNameRequired
)

const (
	StorageMemory   = runtimeconfig.StorageMemory
	StorageSQLite   = runtimeconfig.StorageSQLite
	StoragePostgres = runtimeconfig.StoragePostgres
)

type (
	Config            = runtimeconfig.Config
	TranslationConfig = runtimeconfig.TranslationConfig
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	FeedsConfig       = runtimeconfig.FeedsConfig
	UsersConfig       = runtimeconfig.UsersConfig
	Features          = runtimeconfig.Features
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// WithDefaults fills the empty fields of cfg from DefaultConfig.
func WithDefaults(cfg Config) (Config, error) {
	return runtimeconfig.WithDefaults(cfg)
}

// FromEnv overlays prefixed environment variables onto base.
func FromEnv(base Config, prefix string) (Config, error) {
	return runtimeconfig.FromEnv(base, prefix)
}
