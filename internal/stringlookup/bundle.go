package stringlookup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/nicksnyder/go-i18n/v2/i18n/template"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// ContextSeparator joins a context and a source string into a message ID.
const ContextSeparator = "|"

// MessageID returns the bundle message ID of source under msgContext.
func MessageID(source, msgContext string) string {
	if msgContext == "" {
		return source
	}
	return msgContext + ContextSeparator + source
}

// BundleLookup resolves translations from go-i18n message files. Message IDs
// are the source strings themselves (see MessageID); message files are not
// scoped by configuration object, so name is ignored. Messages are returned
// verbatim: "{{...}}" is not executed as a template.
type BundleLookup struct {
	bundle *i18n.Bundle
	logger interfaces.Logger
}

var _ interfaces.StringLookup = (*BundleLookup)(nil)

// NewBundleLookup creates an empty bundle for base. TOML and JSON message
// files can be loaded with LoadFS.
func NewBundleLookup(base string, logger interfaces.Logger) (*BundleLookup, error) {
	tag, err := language.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, fmt.Errorf("stringlookup: parse base language %q: %w", base, err)
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &BundleLookup{
		bundle: bundle,
		logger: logging.Ensure(logger),
	}, nil
}

// LoadFS loads every *.toml and *.json message file below root in fsys. File
// names follow the go-i18n convention (e.g. "active.fr.toml").
func (b *BundleLookup) LoadFS(fsys fs.FS, root string) (int, error) {
	if fsys == nil {
		return 0, errors.New("stringlookup: message filesystem is nil")
	}
	if root == "" {
		root = "."
	}
	loaded := 0
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(p) {
		case ".toml", ".json":
		default:
			return nil
		}
		if _, err := b.bundle.LoadMessageFileFS(fsys, p); err != nil {
			return fmt.Errorf("stringlookup: load %s: %w", p, err)
		}
		loaded++
		return nil
	})
	return loaded, err
}

// AddMessages registers translations for lang programmatically. Keys of
// messages are message IDs as produced by MessageID.
func (b *BundleLookup) AddMessages(lang string, messages map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return fmt.Errorf("stringlookup: parse language %q: %w", lang, err)
	}
	batch := make([]*i18n.Message, 0, len(messages))
	for id, other := range messages {
		batch = append(batch, &i18n.Message{ID: id, Other: other})
	}
	return b.bundle.AddMessages(tag, batch...)
}

// Lookup resolves source in lang. Only an exact language match counts as a
// translation; go-i18n falling back to the base language is reported as a
// miss.
func (b *BundleLookup) Lookup(_ context.Context, _ string, lang, source, msgContext string) (string, bool) {
	if b == nil || source == "" {
		return "", false
	}
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		b.logger.Debug("lookup.bundle.invalid_language", "language", lang, "error", err)
		return "", false
	}

	localizer := i18n.NewLocalizer(b.bundle, tag.String())
	msg, resolved, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{
		MessageID:      MessageID(source, msgContext),
		TemplateParser: template.IdentityParser{},
	})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			b.logger.Debug("lookup.bundle.localize_failed", "language", lang, "error", err)
		}
		return "", false
	}
	if !sameLanguage(resolved, tag) || msg == "" {
		return "", false
	}
	return msg, true
}

func sameLanguage(a, b language.Tag) bool {
	baseA, _ := a.Base()
	baseB, _ := b.Base()
	if baseA != baseB {
		return false
	}
	regionA, confA := a.Region()
	regionB, confB := b.Region()
	if confA == language.Exact && confB == language.Exact {
		return regionA == regionB
	}
	return true
}
