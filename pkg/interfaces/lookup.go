package interfaces

import "context"

// StringLookup resolves a translated string for a configuration object.
//
// name is the configuration object name the string belongs to, language the
// target language code, source the untranslated value and msgContext the
// optional disambiguation context ("" when none). The boolean result is false
// when no translation is available; implementations must not treat that as an
// error.
type StringLookup interface {
	Lookup(ctx context.Context, name, language, source, msgContext string) (string, bool)
}

// StringLookupFunc adapts a plain function to StringLookup.
type StringLookupFunc func(ctx context.Context, name, language, source, msgContext string) (string, bool)

// Lookup calls f.
func (f StringLookupFunc) Lookup(ctx context.Context, name, language, source, msgContext string) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(ctx, name, language, source, msgContext)
}
