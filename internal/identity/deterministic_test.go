package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("go-config-i18n:test:key")
	second := UUID("go-config-i18n:test:key")
	if first == uuid.Nil || first != second {
		t.Fatalf("expected stable non-nil uuid, got %s and %s", first, second)
	}
	if UUID("  ") != uuid.Nil {
		t.Fatal("expected nil uuid for blank key")
	}
}

func TestLocaleStringUUIDSeparatesFields(t *testing.T) {
	a := LocaleStringUUID("system.site", "fr", "", "Hello")
	b := LocaleStringUUID("system.site", "FR ", "", "Hello")
	c := LocaleStringUUID("system.site", "fr", "Site slogan", "Hello")
	d := LocaleStringUUID("", "fr", "", "Hello")

	if a != b {
		t.Fatalf("expected language to be normalised, got %s and %s", a, b)
	}
	if a == c || a == d {
		t.Fatal("expected context and name to change the identifier")
	}
}

func TestTermUUIDNormalisesInput(t *testing.T) {
	if TermUUID("Tags", "News") != TermUUID(" tags ", "news") {
		t.Fatal("expected case-insensitive term ids")
	}
}

func TestLocaleStringUUIDKeepsSourceVerbatim(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{name: "case", a: "Hello", b: "hello"},
		{name: "trailing space", a: "Home", b: "Home "},
		{name: "leading space", a: "Home", b: " Home"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if LocaleStringUUID("", "fr", "", tc.a) == LocaleStringUUID("", "fr", "", tc.b) {
				t.Fatalf("expected %q and %q to get distinct ids", tc.a, tc.b)
			}
			if LocaleStringUUID("", "fr", tc.a, "Hello") == LocaleStringUUID("", "fr", tc.b, "Hello") {
				t.Fatalf("expected contexts %q and %q to get distinct ids", tc.a, tc.b)
			}
		})
	}
}

func TestUserUUIDDistinguishesUIDs(t *testing.T) {
	if UserUUID(0) == UserUUID(1) {
		t.Fatal("expected distinct identifiers for uid 0 and 1")
	}
	if UserUUID(1) != UserUUID(1) {
		t.Fatal("expected stable identifier")
	}
}
