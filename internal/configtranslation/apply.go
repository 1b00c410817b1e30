package configtranslation

import (
	"context"
	"strconv"

	"github.com/goliatone/go-config-i18n/internal/configtree"
)

// Apply returns a copy of source with overlay values merged on top. Nested
// overlays descend into maps and into slices by decimal index; entries whose
// target is missing or has a different shape are ignored. source is never
// mutated.
func Apply(source map[string]any, overlay Overlay) map[string]any {
	out := cloneMap(source)
	if out == nil {
		out = map[string]any{}
	}
	mergeOverlay(out, overlay)
	return out
}

// Translate builds the typed tree for data, computes the overlay and returns
// the merged document along with the overlay itself.
func (s *Service) Translate(ctx context.Context, name string, schema, data map[string]any, opts Options) (map[string]any, Overlay, error) {
	root, err := configtree.FromSchema(schema, data)
	if err != nil {
		return nil, nil, err
	}
	overlay := s.Overlay(ctx, name, root, opts)
	return Apply(data, overlay), overlay, nil
}

func mergeOverlay(dest map[string]any, overlay Overlay) {
	for key, value := range overlay {
		nested, isNested := value.(Overlay)
		if !isNested {
			dest[key] = value
			continue
		}
		switch existing := dest[key].(type) {
		case map[string]any:
			mergeOverlay(existing, nested)
		case []any:
			mergeList(existing, nested)
		}
	}
}

func mergeList(dest []any, overlay Overlay) {
	for key, value := range overlay {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(dest) {
			continue
		}
		nested, isNested := value.(Overlay)
		if !isNested {
			dest[idx] = value
			continue
		}
		switch existing := dest[idx].(type) {
		case map[string]any:
			mergeOverlay(existing, nested)
		case []any:
			mergeList(existing, nested)
		}
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	default:
		return value
	}
}
