package domain

import (
	"regexp"
	"strings"
)

const MinPasswordLength = 8

var usernameRegex = regexp.MustCompile(`^[a-z0-9._]+$`)

const passwordSpecials = "@$!%*?&"

// ValidateUsername validates username format.
// Rules: lowercase letters, digits, dots and underscores only; must not end
// with a dot.
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "Username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return &ValidationError{Field: "username", Message: "Username can only contain lowercase letters, numbers, dots and underscores"}
	}
	if strings.HasSuffix(username, ".") {
		return &ValidationError{Field: "username", Message: "Username cannot end with a dot"}
	}
	return nil
}

// ValidatePassword validates registration password strength.
// Rules: at least 8 characters, one lowercase, one uppercase, one digit and
// one of @$!%*?&, drawn exclusively from those character classes.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return &ValidationError{Field: "password", Message: "Password contains an invalid character"}
		}
	}

	if !lower || !upper || !digit || !special {
		return &ValidationError{Field: "password", Message: "Password must include uppercase, lowercase, a number, and a special character"}
	}
	return nil
}
