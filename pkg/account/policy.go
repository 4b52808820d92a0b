package account

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// UsernamePolicy decides what happens when first and last name concatenate
// into a username outside the accepted character set.
type UsernamePolicy string

const (
	// PolicyPreserve uses the concatenation verbatim and lets storage decide.
	PolicyPreserve UsernamePolicy = "preserve"
	// PolicyReject turns an invalid username into a field error at submit.
	PolicyReject UsernamePolicy = "reject"
	// PolicySanitize replaces an invalid username with a transliterated slug.
	PolicySanitize UsernamePolicy = "sanitize"
)

const maxUsernameLength = 60

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._@-]+$`)

// ParsePolicy maps configuration input to a policy. Empty input selects
// PolicyPreserve.
func ParsePolicy(raw string) (UsernamePolicy, error) {
	switch policy := UsernamePolicy(strings.ToLower(strings.TrimSpace(raw))); policy {
	case "":
		return PolicyPreserve, nil
	case PolicyPreserve, PolicyReject, PolicySanitize:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, raw)
	}
}

// ValidUsername reports whether username is non-empty, at most 60 characters
// and built only from ASCII letters, digits and . _ @ -.
func ValidUsername(username string) bool {
	if len([]rune(username)) > maxUsernameLength {
		return false
	}
	return usernamePattern.MatchString(username)
}

// Username applies the policy to first and last name. The bool result is
// false when the policy refuses the outcome.
func (p UsernamePolicy) Username(first, last string) (string, bool) {
	raw := first + last
	switch p {
	case PolicyReject:
		return raw, ValidUsername(raw)
	case PolicySanitize:
		if ValidUsername(raw) {
			return raw, true
		}
		sanitized := slug.Make(strings.TrimSpace(first + " " + last))
		if len([]rune(sanitized)) > maxUsernameLength {
			sanitized = strings.TrimRight(string([]rune(sanitized)[:maxUsernameLength]), "-")
		}
		return sanitized, sanitized != ""
	default:
		return raw, true
	}
}
