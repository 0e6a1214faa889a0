package auth

import (
	"regexp"
	"strings"
)

// DefaultPassword is the credential assigned to users created without a
// password, and the fallback for legacy records that carry none.
const DefaultPassword = "password"

// Permissive on purpose: a local part, "@", and a domain with a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.ToLower(email))
}

// PasswordMatches compares the candidate against the stored password.
// Records without a password predate the password field and authenticate
// against the default credential.
func PasswordMatches(candidate, stored string) bool {
	if stored == "" {
		return candidate == DefaultPassword
	}
	return candidate == stored
}
