// internal/slug/slug.go
package slug

import (
	"strings"
)

// Derive produces a URL-safe identifier from a product display name.
//
// The input is lowercased, every character that is not a lowercase ASCII
// letter, digit, space, or hyphen is stripped, whitespace runs collapse into
// a single hyphen, hyphen runs collapse into a single hyphen, and leading or
// trailing hyphens are trimmed. The result contains only [a-z0-9-].
//
// A name composed entirely of stripped characters derives to the empty
// string; callers must treat that as a validation failure, never persist it.
func Derive(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}

	out := b.String()
	out = strings.Join(strings.Fields(out), "-")
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}
