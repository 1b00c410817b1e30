package configtree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-config-i18n/internal/validation"
)

const (
	keywordTranslatable = "x-translatable"
	keywordContext      = "x-translation-context"
	keywordType         = "x-type"
	keywordOrder        = "x-order"
)

// translatableTypes lists x-type values that are translatable without an
// explicit x-translatable flag.
var translatableTypes = map[string]bool{
	"label":          true,
	"required_label": true,
	"text":           true,
	"date_format":    true,
}

// FromSchema validates data against schema and builds the typed tree.
//
// Object properties are visited in x-order first, then in lexical order, so
// the resulting tree is deterministic for map input. Keys present in data but
// unknown to the schema become untyped (non-translatable) nodes.
func FromSchema(schema map[string]any, data map[string]any) (*Node, error) {
	if err := validation.ValidateData(schema, data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return buildObject(schema, data), nil
}

// FromData builds an untyped tree where no element is translatable.
func FromData(data map[string]any) *Node {
	return buildObject(nil, data)
}

func build(schema map[string]any, value any) *Node {
	switch typed := value.(type) {
	case map[string]any:
		return buildObject(schema, typed)
	case []any:
		return buildList(schema, typed)
	case []string:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = item
		}
		return buildList(schema, items)
	default:
		return NewScalar(value, definitionFor(schema))
	}
}

func buildObject(schema map[string]any, data map[string]any) *Node {
	node := NewComposite()
	properties, _ := schema["properties"].(map[string]any)
	additional, _ := schema["additionalProperties"].(map[string]any)

	for _, key := range orderedKeys(schema, data) {
		child, ok := properties[key].(map[string]any)
		if !ok {
			child = additional
		}
		node.Set(key, build(child, data[key]))
	}
	return node
}

func buildList(schema map[string]any, items []any) *Node {
	node := NewList()
	itemSchema, _ := schema["items"].(map[string]any)
	for _, item := range items {
		node.Append(build(itemSchema, item))
	}
	return node
}

func orderedKeys(schema map[string]any, data map[string]any) []string {
	seen := make(map[string]bool, len(data))
	keys := make([]string, 0, len(data))

	for _, raw := range asSlice(schema[keywordOrder]) {
		key := strings.TrimSpace(fmt.Sprint(raw))
		if _, ok := data[key]; !ok || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	rest := make([]string, 0, len(data))
	for key := range data {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func definitionFor(schema map[string]any) Definition {
	if schema == nil {
		return Definition{}
	}
	def := Definition{}
	if xType, ok := schema[keywordType].(string); ok && strings.TrimSpace(xType) != "" {
		def.Type = strings.TrimSpace(xType)
	} else if jsonType, ok := schema["type"].(string); ok {
		def.Type = jsonType
	}
	if flag, ok := schema[keywordTranslatable].(bool); ok {
		def.Translatable = flag
	} else {
		def.Translatable = translatableTypes[def.Type]
	}
	if context, ok := schema[keywordContext].(string); ok {
		def.Context = strings.TrimSpace(context)
	}
	return def
}

func asSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}
