// Package normalize holds the canonical string normalizations applied to
// user-supplied identity fields before comparison or storage.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared and
// stored in this form everywhere (event RSVP lists, profile keys).
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims surrounding whitespace. No digit validation is applied; the
// field is optional free text end to end.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// Category trims a category or subcategory label. Matching is otherwise
// exact and case-sensitive, so case is preserved.
func Category(s string) string {
	return strings.TrimSpace(s)
}
