package validation

import (
	"errors"
	"regexp"
	"strings"
)

// GitHub logins: alphanumerics and single hyphens, no leading or trailing hyphen.
// Enterprise managed users carry an underscore shortcode suffix (jdoe_acme).
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_](?:[A-Za-z0-9_]|-[A-Za-z0-9_])*$`)

// ValidateUsername validates a GitHub login
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return errors.New("username is required")
	}

	if len(trimmed) > 39 {
		return errors.New("username is too long (max 39 characters)")
	}

	if !usernamePattern.MatchString(trimmed) {
		return errors.New("username may only contain letters, numbers, underscores and single hyphens")
	}

	return nil
}
