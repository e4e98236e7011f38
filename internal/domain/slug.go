package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphaNumeric = regexp.MustCompile(`[^a-z0-9]+`)

var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the immutable URL-safe identifier for a new catalog entry:
// accents folded to ASCII, lowercased, runs of non-alphanumerics collapsed
// to single hyphens.
func Slugify(name string) string {
	folded, _, err := transform.String(asciiFolder, name)
	if err != nil {
		folded = name
	}
	slug := strings.ToLower(folded)
	slug = nonAlphaNumeric.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "exercise"
	}
	return slug
}
