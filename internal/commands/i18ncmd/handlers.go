package i18ncmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-config-i18n/internal/commands"
	"github.com/goliatone/go-config-i18n/internal/configtranslation"
	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/internal/stringlookup"
	"github.com/goliatone/go-config-i18n/internal/translationconfig"
	"github.com/goliatone/go-config-i18n/internal/users"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

const (
	installUsersOperation    = "users.install"
	importStringsOperation   = "strings.import"
	updateSettingsOperation  = "settings.update"
	translateConfigOperation = "config.translate"
)

var (
	// ErrUsersFeatureDisabled is returned when the users feature is turned off.
	ErrUsersFeatureDisabled = errors.New("i18n command: users feature disabled")
)

var (
	_ command.Commander[InstallUsersCommand]              = (*InstallUsersHandler)(nil)
	_ command.Commander[ImportStringsCommand]             = (*ImportStringsHandler)(nil)
	_ command.Commander[UpdateTranslationSettingsCommand] = (*UpdateTranslationSettingsHandler)(nil)
	_ command.Commander[TranslateConfigCommand]           = (*TranslateConfigHandler)(nil)
)

// InstallUsersHandler seeds the default accounts.
type InstallUsersHandler struct {
	inner *commands.Handler[InstallUsersCommand]
}

// NewInstallUsersHandler creates a handler writing to repo.
func NewInstallUsersHandler(repo users.Repository, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InstallUsersCommand]) *InstallUsersHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg InstallUsersCommand) error {
		if !gates.usersEnabled() {
			return ErrUsersFeatureDisabled
		}
		installer := users.NewInstaller(repo, msg.Langcode,
			users.WithAdminName(msg.AdminName),
			users.WithInstallerLogger(logger),
		)
		created, err := installer.Install(ctx)
		if err != nil {
			return err
		}
		logger.Info("i18n.command.users_install.completed", "created_count", len(created))
		return nil
	}

	handlerOpts := []commands.HandlerOption[InstallUsersCommand]{
		commands.WithLogger[InstallUsersCommand](logger),
		commands.WithOperation[InstallUsersCommand](installUsersOperation),
		commands.WithMessageFields(func(msg InstallUsersCommand) map[string]any {
			return map[string]any{"langcode": msg.Langcode}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[InstallUsersCommand](logger)),
	}
	return &InstallUsersHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[InstallUsersCommand].
func (h *InstallUsersHandler) Execute(ctx context.Context, msg InstallUsersCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportStringsHandler stores translations in a string store.
type ImportStringsHandler struct {
	inner *commands.Handler[ImportStringsCommand]
}

// NewImportStringsHandler creates a handler writing to store.
func NewImportStringsHandler(store stringlookup.Store, logger interfaces.Logger, opts ...commands.HandlerOption[ImportStringsCommand]) *ImportStringsHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ImportStringsCommand) error {
		saved := 0
		for _, entry := range msg.Strings {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := store.Save(ctx, stringlookup.LocaleString{
				Name:        msg.Name,
				Language:    msg.Language,
				Source:      entry.Source,
				Context:     entry.Context,
				Translation: entry.Translation,
			}); err != nil {
				return err
			}
			saved++
		}
		logger.Info("i18n.command.strings_import.completed", "saved_count", saved)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportStringsCommand]{
		commands.WithLogger[ImportStringsCommand](logger),
		commands.WithOperation[ImportStringsCommand](importStringsOperation),
		commands.WithMessageFields(func(msg ImportStringsCommand) map[string]any {
			return map[string]any{
				"config_name": msg.Name,
				"language":    msg.Language,
				"count":       len(msg.Strings),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportStringsCommand](logger)),
	}
	return &ImportStringsHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportStringsCommand].
func (h *ImportStringsHandler) Execute(ctx context.Context, msg ImportStringsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateTranslationSettingsHandler persists translation settings.
type UpdateTranslationSettingsHandler struct {
	inner *commands.Handler[UpdateTranslationSettingsCommand]
}

// NewUpdateTranslationSettingsHandler creates a handler writing to repo.
func NewUpdateTranslationSettingsHandler(repo translationconfig.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateTranslationSettingsCommand]) *UpdateTranslationSettingsHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg UpdateTranslationSettingsCommand) error {
		_, err := repo.Upsert(ctx, translationconfig.Settings{
			TranslationsEnabled: msg.TranslationsEnabled,
			BaseLanguage:        msg.BaseLanguage,
			Languages:           msg.Languages,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdateTranslationSettingsCommand]{
		commands.WithLogger[UpdateTranslationSettingsCommand](logger),
		commands.WithOperation[UpdateTranslationSettingsCommand](updateSettingsOperation),
		commands.WithMessageFields(func(msg UpdateTranslationSettingsCommand) map[string]any {
			return map[string]any{
				"translations_enabled": msg.TranslationsEnabled,
				"base_language":        msg.BaseLanguage,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdateTranslationSettingsCommand](logger)),
	}
	return &UpdateTranslationSettingsHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UpdateTranslationSettingsCommand].
func (h *UpdateTranslationSettingsHandler) Execute(ctx context.Context, msg UpdateTranslationSettingsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// TranslateConfigHandler computes configuration overlays.
type TranslateConfigHandler struct {
	inner *commands.Handler[TranslateConfigCommand]
}

// NewTranslateConfigHandler creates a handler backed by service.
func NewTranslateConfigHandler(service *configtranslation.Service, logger interfaces.Logger, opts ...commands.HandlerOption[TranslateConfigCommand]) *TranslateConfigHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg TranslateConfigCommand) error {
		translated, overlay, err := service.Translate(ctx, msg.Name, msg.Schema, msg.Data, configtranslation.Options{
			Source: msg.Source,
			Target: msg.Target,
		})
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.Overlay = overlay
			msg.Result.Translated = translated
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[TranslateConfigCommand]{
		commands.WithLogger[TranslateConfigCommand](logger),
		commands.WithOperation[TranslateConfigCommand](translateConfigOperation),
		commands.WithMessageFields(func(msg TranslateConfigCommand) map[string]any {
			return map[string]any{
				"config_name":     msg.Name,
				"source_language": msg.Source,
				"target_language": msg.Target,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[TranslateConfigCommand](logger)),
	}
	return &TranslateConfigHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[TranslateConfigCommand].
func (h *TranslateConfigHandler) Execute(ctx context.Context, msg TranslateConfigCommand) error {
	return h.inner.Execute(ctx, msg)
}
