// Package repository provides data access layer implementations for the application.
package repository

import (
	"strings"
)

// isUniqueViolation reports whether err came from a unique index or
// constraint. Matches Postgres (23505) and sqlite wording so tests and
// production behave the same.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
