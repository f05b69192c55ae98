package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

// strictPolicy drops every element and keeps text content. bluemonday
// policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// maxStripPasses bounds how many layers of entity-encoded markup are peeled.
const maxStripPasses = 4

// StripTags removes HTML markup from s and decodes the entities the policy
// escapes, so "<b>Jo</b>e" becomes "Joe" and "O&#39;Neil" stays readable.
// Decoding can surface new markup ("&lt;b&gt;"), so passes repeat until the
// text is stable; anything still unstable loses its angle brackets.
func StripTags(s string) string {
	for i := 0; i < maxStripPasses; i++ {
		out := html.UnescapeString(strictPolicy.Sanitize(s))
		if out == s {
			return out
		}
		s = out
	}
	return angleBrackets.Replace(s)
}

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// CollapseWhitespace replaces every whitespace run with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeText strips markup, then normalizes whitespace.
func SanitizeText(s string) string {
	return CollapseWhitespace(StripTags(s))
}

// CoerceRole returns the role when it is exactly "user" or "admin" and
// falls back to "user" for anything else.
func CoerceRole(raw string) domain.Role {
	r := domain.Role(raw)
	if r.Valid() {
		return r
	}
	return domain.RoleUser
}

// SanitizeInput applies the text rules to email and names and coerces the
// role. The password is passed through untouched.
func SanitizeInput(in ports.RegistrationInput) ports.RegistrationInput {
	return ports.RegistrationInput{
		Email:     SanitizeText(in.Email),
		FirstName: SanitizeText(in.FirstName),
		LastName:  SanitizeText(in.LastName),
		Password:  in.Password,
		Role:      string(CoerceRole(in.Role)),
	}
}

// NormalizeEmail lowercases the domain part of an address. The local part is
// case-sensitive per RFC 5321 and kept as submitted.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
