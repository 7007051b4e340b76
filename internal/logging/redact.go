package logging

import "strings"

// secretKeyParts mark attribute keys whose values are masked. Frontmatter
// carried through logs occasionally holds deployment credentials.
var secretKeyParts = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"API_KEY",
	"APIKEY",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes mark values that are masked whatever their key.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"github_pat_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
}

// Redact returns value masked when key names a secret or value looks like
// an access token, and value unchanged otherwise.
func Redact(key, value string) string {
	if isSecretKey(key) || hasTokenPrefix(value) {
		return Mask(value)
	}
	return value
}

// Mask hides all but the last four characters of value. Values of four
// characters or fewer are hidden entirely.
func Mask(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

func isSecretKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, part := range secretKeyParts {
		if strings.Contains(upper, part) {
			return true
		}
	}
	return false
}

func hasTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
