// internal/app/system/normalize/normalize.go
//
// Package normalize centralizes the small string normalizations applied to
// user input before validation or storage. Keeping them in one place means a
// login form, an onboarding form, and a store query can never disagree about
// what "the same email" means.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims display names without changing case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// JoinCode trims and uppercases a join code as entered by a user, so
// " ab12cd " and "AB12CD" resolve identically.
func JoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
