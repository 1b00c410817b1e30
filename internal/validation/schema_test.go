package validation

import (
	"errors"
	"testing"
)

func siteSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":           "string",
				"x-translatable": true,
			},
			"page": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"front": map[string]any{"type": "string"},
				},
			},
			"weight": map[string]any{"type": "integer"},
		},
		"required": []any{"name"},
	}
}

func TestValidateDataAcceptsMatchingDocument(t *testing.T) {
	data := map[string]any{
		"name":   "Example",
		"page":   map[string]any{"front": "/node"},
		"weight": 5,
	}
	if err := ValidateData(siteSchema(), data); err != nil {
		t.Fatalf("ValidateData() error = %v", err)
	}
}

func TestValidateDataReportsIssues(t *testing.T) {
	data := map[string]any{
		"weight": "heavy",
	}
	err := ValidateData(siteSchema(), data)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if len(Issues(err)) == 0 {
		t.Fatalf("expected issues, got none")
	}
}

func TestValidateDataNilSchema(t *testing.T) {
	if err := ValidateData(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to accept data, got %v", err)
	}
}

func TestValidateSchemaRejectsInvalidType(t *testing.T) {
	err := ValidateSchema(map[string]any{"type": 42})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestStripExtensionsRemovesCustomKeywords(t *testing.T) {
	stripped := stripExtensions(siteSchema()).(map[string]any)
	props := stripped["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	if _, ok := name["x-translatable"]; ok {
		t.Fatalf("expected x-translatable to be removed, got %v", name)
	}
	if name["type"] != "string" {
		t.Fatalf("expected standard keywords to be kept, got %v", name)
	}
}
