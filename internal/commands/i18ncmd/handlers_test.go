package i18ncmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-config-i18n/internal/configtranslation"
	"github.com/goliatone/go-config-i18n/internal/stringlookup"
	"github.com/goliatone/go-config-i18n/internal/translationconfig"
	"github.com/goliatone/go-config-i18n/internal/users"
)

func TestInstallUsersHandler(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	handler := NewInstallUsersHandler(repo, nil, FeatureGates{})

	if err := handler.Execute(ctx, InstallUsersCommand{Langcode: "en"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	admin, err := repo.GetByUID(ctx, users.AdminUID)
	if err != nil {
		t.Fatalf("GetByUID() error = %v", err)
	}
	if admin.Name != users.PlaceholderAdmin {
		t.Fatalf("unexpected admin %+v", admin)
	}
}

func TestInstallUsersHandlerRespectsFeatureGate(t *testing.T) {
	handler := NewInstallUsersHandler(users.NewMemoryRepository(), nil, FeatureGates{
		UsersEnabled: func() bool { return false },
	})
	err := handler.Execute(context.Background(), InstallUsersCommand{Langcode: "en"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error when feature disabled, got %v", err)
	}
}

func TestInstallUsersCommandValidation(t *testing.T) {
	handler := NewInstallUsersHandler(users.NewMemoryRepository(), nil, FeatureGates{})
	err := handler.Execute(context.Background(), InstallUsersCommand{Langcode: "not a tag!"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportStringsHandler(t *testing.T) {
	ctx := context.Background()
	store := stringlookup.NewMemoryStore()
	handler := NewImportStringsHandler(store, nil)

	err := handler.Execute(ctx, ImportStringsCommand{
		Name:     "system.site",
		Language: "fr",
		Strings: []StringEntry{
			{Source: "Hello", Translation: "Bonjour"},
			{Source: "May", Context: "Long month name", Translation: "Mai"},
		},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got, ok := store.Lookup(ctx, "system.site", "fr", "May", "Long month name"); !ok || got != "Mai" {
		t.Fatalf("expected stored context translation, got %q (%v)", got, ok)
	}
	if _, ok := store.Lookup(ctx, "other", "fr", "Hello", ""); ok {
		t.Fatal("expected name-scoped string to stay scoped")
	}
}

func TestImportStringsCommandRequiresSources(t *testing.T) {
	cmd := ImportStringsCommand{Language: "fr", Strings: []StringEntry{{Translation: "x"}}}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected validation error for empty source")
	}
	if err := (ImportStringsCommand{Language: "fr"}).Validate(); err == nil {
		t.Fatal("expected validation error for empty strings")
	}
}

func TestUpdateTranslationSettingsHandler(t *testing.T) {
	ctx := context.Background()
	repo := translationconfig.NewMemoryRepository()
	handler := NewUpdateTranslationSettingsHandler(repo, nil)

	err := handler.Execute(ctx, UpdateTranslationSettingsCommand{
		TranslationsEnabled: true,
		BaseLanguage:        "EN",
		Languages:           []string{"fr"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	settings, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.BaseLanguage != "en" || !settings.TranslationsEnabled {
		t.Fatalf("unexpected settings %+v", settings)
	}

	bad := UpdateTranslationSettingsCommand{BaseLanguage: "en", Languages: []string{"??"}}
	if err := handler.Execute(ctx, bad); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTranslateConfigHandler(t *testing.T) {
	store := stringlookup.NewMemoryStore()
	store.Set("fr", "Hello", "", "Bonjour")
	service := configtranslation.NewService(store, configtranslation.WithBaseLanguage("en"))
	handler := NewTranslateConfigHandler(service, nil)

	result := &TranslateConfigResult{}
	err := handler.Execute(context.Background(), TranslateConfigCommand{
		Name: "system.site",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":  map[string]any{"type": "string", "x-translatable": true},
				"weight": map[string]any{"type": "integer"},
			},
		},
		Data:   map[string]any{"title": "Hello", "weight": 5},
		Source: "en",
		Target: "fr",
		Result: result,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Overlay) != 1 || result.Overlay["title"] != "Bonjour" {
		t.Fatalf("unexpected overlay %v", result.Overlay)
	}
	if result.Translated["title"] != "Bonjour" {
		t.Fatalf("unexpected translated data %v", result.Translated)
	}
}

func TestTranslateConfigHandlerRejectsInvalidData(t *testing.T) {
	service := configtranslation.NewService(stringlookup.NewMemoryStore(), configtranslation.WithBaseLanguage("en"))
	handler := NewTranslateConfigHandler(service, nil)

	err := handler.Execute(context.Background(), TranslateConfigCommand{
		Name: "system.site",
		Schema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"weight": map[string]any{"type": "integer"}},
		},
		Data:   map[string]any{"weight": "heavy"},
		Source: "en",
		Target: "fr",
	})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestTranslateConfigCommandValidation(t *testing.T) {
	if err := (TranslateConfigCommand{Schema: map[string]any{"type": "object"}, Source: "en", Target: "fr"}).Validate(); err == nil {
		t.Fatal("expected missing name to fail validation")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterCommands(reg, Dependencies{
		Users:    users.NewMemoryRepository(),
		Settings: translationconfig.NewMemoryRepository(),
	}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterCommands() error = %v", err)
	}
	if len(reg.handlers) != 2 || set.InstallUsers == nil || set.UpdateSettings == nil {
		t.Fatalf("unexpected registration %+v", set)
	}
	if set.ImportStrings != nil || set.TranslateConfig != nil {
		t.Fatal("expected handlers without dependencies to be skipped")
	}

	if _, err := RegisterCommands(nil, Dependencies{}, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error without dependencies")
	}
}
