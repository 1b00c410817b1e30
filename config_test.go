package configi18n_test

import (
	"errors"
	"testing"

	configi18n "github.com/goliatone/go-config-i18n"
)

func TestConfigValidateStorageRequiresDSN(t *testing.T) {
	cfg := configi18n.DefaultConfig()
	cfg.Storage.Provider = configi18n.StoragePostgres

	if err := cfg.Validate(); !errors.Is(err, configi18n.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidateUnknownStorageProvider(t *testing.T) {
	cfg := configi18n.DefaultConfig()
	cfg.Storage.Provider = "mongo"

	if err := cfg.Validate(); !errors.Is(err, configi18n.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := configi18n.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "invalid"

	if err := cfg.Validate(); !errors.Is(err, configi18n.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidateBaseLanguageRequiredWhenEnabled(t *testing.T) {
	cfg := configi18n.DefaultConfig()
	cfg.Translation.BaseLanguage = ""

	if err := cfg.Validate(); !errors.Is(err, configi18n.ErrBaseLanguageRequired) {
		t.Fatalf("expected ErrBaseLanguageRequired, got %v", err)
	}
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg, err := configi18n.WithDefaults(configi18n.Config{
		DefaultLocale: "fr",
		Translation:   configi18n.TranslationConfig{Languages: []string{"de"}},
	})
	if err != nil {
		t.Fatalf("WithDefaults returned error: %v", err)
	}
	if cfg.DefaultLocale != "fr" {
		t.Fatalf("expected explicit locale to be kept, got %q", cfg.DefaultLocale)
	}
	if cfg.Translation.BaseLanguage != "en" || cfg.Storage.Provider != configi18n.StorageMemory {
		t.Fatalf("expected defaults to fill empty fields, got %+v", cfg)
	}
	if cfg.Translation.Enabled {
		t.Fatalf("expected boolean toggles to be left as given")
	}
}
