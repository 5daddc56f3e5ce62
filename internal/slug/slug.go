// Package slug derives URL-safe identifiers from free text.
package slug

import (
	"strings"

	"github.com/google/uuid"
	gosimple "github.com/gosimple/slug"
)

// Derive lowercases text, transliterates it to ASCII and collapses every run of
// non-alphanumeric characters into a single "-".
func Derive(text string) string {
	return gosimple.Make(text)
}

// WithSuffix joins the derived slug of text with suffix.
func WithSuffix(text, suffix string) string {
	if suffix == "" {
		return Derive(text)
	}

	base := Derive(text)
	if base == "" {
		return suffix
	}

	return base + "-" + suffix
}

// Unique returns a slug of text that carries a random uuid token, so two calls
// with the same text never collide.
func Unique(text string) string {
	return WithSuffix(text, uuid.NewString())
}

// Truncate shortens a slug to at most n bytes without leaving a trailing separator.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}

	return strings.TrimRight(s[:n], "-")
}
