package i18ncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

const (
	installUsersMessageType        = "i18n.users.install"
	importStringsMessageType       = "i18n.strings.import"
	updateSettingsMessageType      = "i18n.settings.update"
	translateConfigMessageType     = "i18n.config.translate"
	validationCodeLanguageInvalid  = "i18n.language_invalid"
	validationCodeSourceRequired   = "i18n.strings.source_required"
	validationCodeConfigNameNeeded = "i18n.config.name_required"
)

// InstallUsersCommand seeds the default anonymous and administrator accounts.
type InstallUsersCommand struct {
	// Langcode is the default language assigned to the seeded accounts.
	Langcode  string `json:"langcode"`
	AdminName string `json:"admin_name,omitempty"`
}

// Type implements command.Message.
func (InstallUsersCommand) Type() string { return installUsersMessageType }

// Validate ensures a usable language code is supplied.
func (cmd InstallUsersCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Langcode, validation.Required, validation.By(languageTag)),
	)
}

// StringEntry is one translated source string.
type StringEntry struct {
	Source      string `json:"source"`
	Context     string `json:"context,omitempty"`
	Translation string `json:"translation"`
}

// ImportStringsCommand stores translations for Language. An empty Name
// makes the strings available to every configuration object.
type ImportStringsCommand struct {
	Name     string        `json:"name,omitempty"`
	Language string        `json:"language"`
	Strings  []StringEntry `json:"strings"`
}

// Type implements command.Message.
func (ImportStringsCommand) Type() string { return importStringsMessageType }

// Validate checks the language and that every entry has a source.
func (cmd ImportStringsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Language, validation.Required, validation.By(languageTag)),
		validation.Field(&cmd.Strings, validation.Required, validation.By(func(value any) error {
			for _, entry := range value.([]StringEntry) {
				if entry.Source == "" {
					return validation.NewError(validationCodeSourceRequired, "every string requires a source")
				}
			}
			return nil
		})),
	)
}

// UpdateTranslationSettingsCommand replaces the persisted translation settings.
type UpdateTranslationSettingsCommand struct {
	TranslationsEnabled bool     `json:"translations_enabled"`
	BaseLanguage        string   `json:"base_language"`
	Languages           []string `json:"languages,omitempty"`
}

// Type implements command.Message.
func (UpdateTranslationSettingsCommand) Type() string { return updateSettingsMessageType }

// Validate ensures the base language and every target are valid tags.
func (cmd UpdateTranslationSettingsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BaseLanguage, validation.Required, validation.By(languageTag)),
		validation.Field(&cmd.Languages, validation.Each(validation.By(languageTag))),
	)
}

// TranslateConfigResult receives the output of a TranslateConfigCommand.
type TranslateConfigResult struct {
	Overlay    map[string]any
	Translated map[string]any
}

// TranslateConfigCommand computes the overlay of a configuration document.
type TranslateConfigCommand struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Data   map[string]any `json:"data"`
	Source string         `json:"source"`
	Target string         `json:"target"`
	// Result, when set, is filled once the command succeeds.
	Result *TranslateConfigResult `json:"-"`
}

// Type implements command.Message.
func (TranslateConfigCommand) Type() string { return translateConfigMessageType }

// Validate checks the config name, schema and language pair.
func (cmd TranslateConfigCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError(validationCodeConfigNameNeeded, "config name is required")
			}
			return nil
		})),
		validation.Field(&cmd.Schema, validation.Required),
		validation.Field(&cmd.Source, validation.Required, validation.By(languageTag)),
		validation.Field(&cmd.Target, validation.Required, validation.By(languageTag)),
	)
}

func languageTag(value any) error {
	code, _ := value.(string)
	if strings.TrimSpace(code) == "" {
		return nil
	}
	if _, err := language.Parse(strings.TrimSpace(code)); err != nil {
		return validation.NewError(validationCodeLanguageInvalid, "must be a valid language tag")
	}
	return nil
}
