package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

const (
	rootModule        = "i18n"
	translationModule = "i18n.translation"
	lookupModule      = "i18n.lookup"
	feedsModule       = "i18n.feeds"
	usersModule       = "i18n.users"
	commandsModule    = "i18n.commands"
)

const (
	fieldConfigName     = "config_name"
	fieldSourceLanguage = "source_language"
	fieldTargetLanguage = "target_language"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TranslationLogger returns the logger namespace used by the config overlay service.
func TranslationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationModule)
}

// LookupLogger returns the logger namespace used by string stores.
func LookupLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lookupModule)
}

// FeedsLogger returns the logger namespace used by feed formatters.
func FeedsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, feedsModule)
}

// UsersLogger returns the logger namespace used by the user installer.
func UsersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, usersModule)
}

// CommandsLogger returns the logger namespace used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithTranslationContext enriches the logger with the config object name and
// language pair of a translation request. Empty values are ignored.
func WithTranslationContext(logger interfaces.Logger, name, source, target string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		fields[fieldConfigName] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSourceLanguage] = trimmed
	}
	if trimmed := strings.TrimSpace(target); trimmed != "" {
		fields[fieldTargetLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
