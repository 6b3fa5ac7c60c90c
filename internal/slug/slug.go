// Package slug derives URL keys from human readable names.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	separatorRuns = regexp.MustCompile(`[\s_-]+`)
	edgeHyphens   = regexp.MustCompile(`^-+|-+$`)
)

// Make lowercases name, drops every character that is not an ASCII letter,
// digit, underscore, whitespace or hyphen, collapses whitespace, underscore and
// hyphen runs into a single hyphen and trims hyphens at both ends.
//
//	Make("Tissus & Wax") == "tissus-wax"
func Make(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case isWord(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '\ufeff':
			b.WriteByte(' ')
		}
	}

	s := separatorRuns.ReplaceAllString(b.String(), "-")
	return edgeHyphens.ReplaceAllString(s, "")
}

// Valid reports whether s is already in canonical form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}

func isWord(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
