package usermanager

import "regexp"

var usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// UsernameRules is printed when a new username is rejected.
var UsernameRules = []string{
	"must start with a lowercase letter or underscore",
	"may contain only lowercase letters, digits, underscores and hyphens",
	"must be at most 32 characters long",
}

// ValidUsername reports whether name is acceptable for a new account.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}
