package domain

import "strings"

// Intensity modifiers carry no identity: "light jog" and "jog" are the same
// exercise for matching purposes.
var intensityModifiers = map[string]struct{}{
	"light":    {},
	"dynamic":  {},
	"deep":     {},
	"static":   {},
	"moderate": {},
	"brisk":    {},
}

// Multi-word spellings are collapsed before single-word synonyms.
var phraseSynonyms = [][2]string{
	{"on treadmill", "treadmill"},
}

var wordSynonyms = map[string]string{
	"running":    "jogging",
	"stretching": "stretch",
	"breath":     "breathing",
	"circle":     "circles",
}

// Normalize canonicalizes a raw exercise name for comparison: lowercase,
// trimmed, intensity modifiers stripped, synonym groups collapsed to one
// spelling, whitespace collapsed. It is idempotent and total; an empty
// input normalizes to the empty string.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	words := make([]string, 0, 8)
	for _, word := range strings.Fields(s) {
		if _, ok := intensityModifiers[word]; ok {
			continue
		}
		words = append(words, word)
	}

	for _, pair := range phraseSynonyms {
		words = collapsePhrase(words, strings.Fields(pair[0]), pair[1])
	}

	for i, word := range words {
		if canonical, ok := wordSynonyms[word]; ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}

// collapsePhrase replaces every whole-word occurrence of the phrase with the
// replacement token. Matching on word boundaries keeps words that merely end
// in a phrase prefix ("marathon") intact.
func collapsePhrase(words, phrase []string, replacement string) []string {
	if len(phrase) == 0 || len(words) < len(phrase) {
		return words
	}
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if matchesAt(words, phrase, i) {
			out = append(out, replacement)
			i += len(phrase)
			continue
		}
		out = append(out, words[i])
		i++
	}
	return out
}

func matchesAt(words, phrase []string, at int) bool {
	if at+len(phrase) > len(words) {
		return false
	}
	for j, token := range phrase {
		if words[at+j] != token {
			return false
		}
	}
	return true
}
