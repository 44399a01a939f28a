package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail     = regexp.MustCompile(`^([a-zA-Z0-9_.\-])+@(([a-zA-Z0-9\-])+\.)+([a-zA-Z0-9]{2,4})+$`)
	reUsername  = regexp.MustCompile(`^[A-Za-z0-9 _.\-]{3,32}$`)
	reAccountID = regexp.MustCompile(`^[0-9a-f]{32}$`)
	reProfileID = regexp.MustCompile(`^[a-z_]+[0-9]?$`)
	reDiscordID = regexp.MustCompile(`^[0-9]{5,20}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Username validates a display name.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// AccountID accepts a dashless lowercase uuid.
func AccountID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reAccountID.MatchString(s)
}

func ProfileID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 40 && reProfileID.MatchString(s)
}

// DiscordID is optional; an empty id is valid.
func DiscordID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "" || reDiscordID.MatchString(s)
}

// Password enforces a length window and mixed character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
