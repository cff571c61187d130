package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// handlePattern is the only shape a handle may take: lowercase letters,
// digits, and underscores.
var handlePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Validate is the shared validator instance for request payloads.
var Validate = validator.New()

func init() {
	// Registration only fails for a nil func or empty tag.
	_ = Validate.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
}

// ValidHandle reports whether s satisfies the handle pattern.
func ValidHandle(s string) bool {
	return handlePattern.MatchString(s)
}
