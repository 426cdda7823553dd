package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// NormalizeEmail lowercases and trims an email address. Uniqueness checks are
// case-insensitive, so normalization happens before any persistence attempt.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the address matches the accepted pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
