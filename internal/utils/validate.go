package utils

import (
	"regexp"
	"unicode"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// ValidUsername reports whether a username is 3 to 30 characters of
// letters, digits and underscores.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// ValidNewPassword reports whether a password satisfies the policy for
// freshly chosen passwords: at least 8 characters with one uppercase
// letter, one lowercase letter and one digit. Passwords hashed before
// the policy existed are unaffected; this only gates new ones.
func ValidNewPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
