// Package slug generates and validates URL slugs for pages.
package slug

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// invalidChars matches everything that may not appear in a slug.
	invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches runs of consecutive hyphens.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts a title to a URL-friendly slug. Non-ASCII characters are
// transliterated, everything except lowercase alphanumerics becomes a hyphen.
func Make(s string) string {
	result := unidecode.Unidecode(s)
	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = invalidChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValid checks if a string is already in slug form: lowercase letters,
// digits and single interior hyphens.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
