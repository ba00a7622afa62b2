// Package services: services/sanitizer_service.go
package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from free-text form fields before they are stored.
// Those fields are later rendered to other users, so anything that survives
// here ends up in their browsers.
type Sanitizer interface {
	Sanitize(text string) string
}

// HTMLSanitizer removes every HTML element and entity-decodes the result,
// leaving plain text only.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer builds the sanitizer used in production.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize strips all markup from text.
func (s *HTMLSanitizer) Sanitize(text string) string {
	// bluemonday escapes entities it keeps; unescape so "O'Reilly & Sons"
	// round-trips as typed.
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}
