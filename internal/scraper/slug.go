package scraper

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var fillerRegex = regexp.MustCompile(`[._]`)

// slugCorrections maps computed slugs that are known to disagree with the
// canonical identifier to the slug the metadata service actually knows.
// Free-text source titles drift from canonical naming often enough that a
// static table is the only reliable fix.
var slugCorrections = map[string]string{
	"60-minutes-us":         "60-minutes",
	"american-crime":        "american-crime-1969",
	"bachelor-live":         "the-bachelor-live",
	"ballers-2015":          "ballers",
	"big-brother-us":        "big-brother-2000",
	"blackish":              "black-ish",
	"house-of-cards-2013":   "house-of-cards",
	"la-to-vegas":           "l-a-to-vegas",
	"mr-d":                  "mr-d-2012",
	"scandal-us":            "scandal",
	"the-fall":              "the-fall-2013",
	"the-librarians-us":     "the-librarians",
	"whose-line-is-it-anyway-us": "whose-line-is-it-anyway-1998",
}

// CleanTitle turns a raw source title fragment into a display title: one
// trailing separator trimmed, filler punctuation replaced with spaces,
// whitespace collapsed.
func CleanTitle(raw string) string {
	t := strings.TrimSpace(raw)
	for _, sep := range []string{".", "-", "_"} {
		if strings.HasSuffix(t, sep) {
			t = strings.TrimSpace(t[:len(t)-1])
			break
		}
	}
	t = fillerRegex.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}

// CorrectSlug returns the canonical replacement for a source-reported slug
// when the correction table has one, the slug itself otherwise.
func CorrectSlug(slug string) string {
	if corrected, ok := slugCorrections[slug]; ok {
		return corrected
	}
	return slug
}

// Slugify computes the canonical-lookup slug for a title. The correction
// table overrides the computed value when an entry exists.
func Slugify(title string) string {
	s := strings.ToLower(removeAccents(title))

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		case r == '.', r == '_', r == '\'':
			b.WriteRune(' ')
		}
	}

	return CorrectSlug(strings.Join(strings.Fields(b.String()), "-"))
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
