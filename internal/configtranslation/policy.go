package configtranslation

import "strings"

// Policy decides whether values authored in source may be translated into
// target.
type Policy func(source, target string) bool

// BaseLanguagePolicy permits translation only when the source language equals
// base. An empty base denies every request.
func BaseLanguagePolicy(base string) Policy {
	base = normalizeLanguage(base)
	return func(source, _ string) bool {
		return base != "" && normalizeLanguage(source) == base
	}
}

// DenyAll is the policy used when translations are disabled.
func DenyAll(string, string) bool { return false }

func normalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
