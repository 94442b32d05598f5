package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// maxEmailLength is the RFC 5321 limit for a forward path
const maxEmailLength = 254

// ParseEmail checks a single submitter-supplied address and returns its bare
// form. "Jane <jane@example.com>" becomes "jane@example.com".
func ParseEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("email address is required")
	}
	if len(email) > maxEmailLength {
		return "", errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", errors.New("invalid email address format")
	}
	if len(addr.Address) > maxEmailLength {
		return "", errors.New("email address is too long (max 254 characters)")
	}

	return addr.Address, nil
}
