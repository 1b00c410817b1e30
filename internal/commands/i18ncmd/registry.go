package i18ncmd

import (
	"errors"

	"github.com/goliatone/go-config-i18n/internal/commands"
	"github.com/goliatone/go-config-i18n/internal/configtranslation"
	"github.com/goliatone/go-config-i18n/internal/stringlookup"
	"github.com/goliatone/go-config-i18n/internal/translationconfig"
	"github.com/goliatone/go-config-i18n/internal/users"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Dependencies are the services the handlers operate on. Nil dependencies
// skip their handler.
type Dependencies struct {
	Users       users.Repository
	Strings     stringlookup.Store
	Settings    translationconfig.Repository
	Translation *configtranslation.Service
}

// HandlerSet groups the handlers built by RegisterCommands.
type HandlerSet struct {
	InstallUsers    *InstallUsersHandler
	ImportStrings   *ImportStringsHandler
	UpdateSettings  *UpdateTranslationSettingsHandler
	TranslateConfig *TranslateConfigHandler
}

// RegisterCommands builds the handlers for deps and registers them with reg
// when one is supplied.
func RegisterCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates) (*HandlerSet, error) {
	if deps.Users == nil && deps.Strings == nil && deps.Settings == nil && deps.Translation == nil {
		return nil, errors.New("i18n command registration: no dependencies supplied")
	}
	logger := commands.CommandLogger(provider, "i18n")

	set := &HandlerSet{}
	var handlers []any
	if deps.Users != nil {
		set.InstallUsers = NewInstallUsersHandler(deps.Users, logger, gates)
		handlers = append(handlers, set.InstallUsers)
	}
	if deps.Strings != nil {
		set.ImportStrings = NewImportStringsHandler(deps.Strings, logger)
		handlers = append(handlers, set.ImportStrings)
	}
	if deps.Settings != nil {
		set.UpdateSettings = NewUpdateTranslationSettingsHandler(deps.Settings, logger)
		handlers = append(handlers, set.UpdateSettings)
	}
	if deps.Translation != nil {
		set.TranslateConfig = NewTranslateConfigHandler(deps.Translation, logger)
		handlers = append(handlers, set.TranslateConfig)
	}

	if reg != nil {
		for _, handler := range handlers {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
