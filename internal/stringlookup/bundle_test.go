package stringlookup

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestBundleLookupLoadsTOMLMessages(t *testing.T) {
	fsys := fstest.MapFS{
		"messages/active.fr.toml": &fstest.MapFile{Data: []byte(`
Hello = "Bonjour"
"Site slogan|Fast" = "Rapide"
`)},
		"messages/active.en.toml": &fstest.MapFile{Data: []byte(`
Hello = "Hello"
Goodbye = "Goodbye"
`)},
		"messages/README.md": &fstest.MapFile{Data: []byte("ignored")},
	}

	lookup, err := NewBundleLookup("en", nil)
	if err != nil {
		t.Fatalf("NewBundleLookup() error = %v", err)
	}
	loaded, err := lookup.LoadFS(fsys, "messages")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if loaded != 2 {
		t.Fatalf("expected 2 files loaded, got %d", loaded)
	}

	ctx := context.Background()
	if got, ok := lookup.Lookup(ctx, "system.site", "fr", "Hello", ""); !ok || got != "Bonjour" {
		t.Fatalf("Lookup(Hello) = %q, %v", got, ok)
	}
	if got, ok := lookup.Lookup(ctx, "system.site", "fr", "Fast", "Site slogan"); !ok || got != "Rapide" {
		t.Fatalf("Lookup(Fast, Site slogan) = %q, %v", got, ok)
	}
	if _, ok := lookup.Lookup(ctx, "system.site", "fr", "Goodbye", ""); ok {
		t.Fatal("expected base-language fallback to count as a miss")
	}
	if _, ok := lookup.Lookup(ctx, "system.site", "not a tag!", "Hello", ""); ok {
		t.Fatal("expected invalid language to miss")
	}
}

func TestBundleLookupAddMessages(t *testing.T) {
	lookup, err := NewBundleLookup("en", nil)
	if err != nil {
		t.Fatalf("NewBundleLookup() error = %v", err)
	}
	if err := lookup.AddMessages("es", map[string]string{MessageID("Save", "Button"): "Guardar"}); err != nil {
		t.Fatalf("AddMessages() error = %v", err)
	}
	if got, ok := lookup.Lookup(context.Background(), "", "es", "Save", "Button"); !ok || got != "Guardar" {
		t.Fatalf("Lookup() = %q, %v", got, ok)
	}
}

func TestBundleLookupReturnsTemplateSyntaxVerbatim(t *testing.T) {
	fsys := fstest.MapFS{
		"active.fr.toml": &fstest.MapFile{Data: []byte(`"Hi {{name}}" = "Salut {{name}}"` + "\n" + `"Open {{" = "Ouvrir {{"` + "\n")},
	}
	lookup, err := NewBundleLookup("en", nil)
	if err != nil {
		t.Fatalf("NewBundleLookup() error = %v", err)
	}
	if _, err := lookup.LoadFS(fsys, "."); err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if err := lookup.AddMessages("de", map[string]string{"Hi {{.Name}}": "Hallo {{.Name}}"}); err != nil {
		t.Fatalf("AddMessages() error = %v", err)
	}

	cases := []struct {
		lang, source, want string
	}{
		{lang: "fr", source: "Hi {{name}}", want: "Salut {{name}}"},
		{lang: "fr", source: "Open {{", want: "Ouvrir {{"},
		{lang: "de", source: "Hi {{.Name}}", want: "Hallo {{.Name}}"},
	}
	for _, tc := range cases {
		if got, ok := lookup.Lookup(context.Background(), "", tc.lang, tc.source, ""); !ok || got != tc.want {
			t.Fatalf("Lookup(%s, %q) = %q, %v; want %q", tc.lang, tc.source, got, ok, tc.want)
		}
	}
}

func TestNewBundleLookupRejectsInvalidBase(t *testing.T) {
	if _, err := NewBundleLookup("??", nil); err == nil {
		t.Fatal("expected error for invalid base language")
	}
}

func TestMessageID(t *testing.T) {
	if MessageID("Hello", "") != "Hello" {
		t.Fatal("expected bare source without context")
	}
	if MessageID("Hello", "Greeting") != "Greeting|Hello" {
		t.Fatal("expected context prefix")
	}
}
