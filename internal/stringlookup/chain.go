package stringlookup

import (
	"context"

	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// Chain consults lookups in order and returns the first translation found.
type Chain []interfaces.StringLookup

var _ interfaces.StringLookup = Chain(nil)

// Lookup satisfies interfaces.StringLookup.
func (c Chain) Lookup(ctx context.Context, name, language, source, msgContext string) (string, bool) {
	for _, lookup := range c {
		if lookup == nil {
			continue
		}
		if value, ok := lookup.Lookup(ctx, name, language, source, msgContext); ok && value != "" {
			return value, true
		}
	}
	return "", false
}
