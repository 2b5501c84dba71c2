package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/sqids/sqids-go"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphens      = regexp.MustCompile(`-+`)
)

// slug suffixes are lowercase so they survive GenerateSlug unchanged
const suffixAlphabet = "k3q7xw9m2jv5ht8nfr4bz6pcgd"

var suffixEncoder *sqids.Sqids

func init() {
	s, err := sqids.New(sqids.Options{Alphabet: suffixAlphabet, MinLength: 6})
	if err != nil {
		panic(err)
	}
	suffixEncoder = s
}

// GenerateSlug: "My Cool Journal!" → "my-cool-journal"
func GenerateSlug(input string) string {
	// "Café Noël" → "cafe noel"
	lower := strings.ToLower(RemoveDiacritics(input))

	cleaned := nonSlugChars.ReplaceAllString(lower, "")
	hyphenated := whitespace.ReplaceAllString(strings.TrimSpace(cleaned), "-")
	normalized := hyphens.ReplaceAllString(hyphenated, "-")

	return strings.Trim(normalized, "-")
}

// RemoveDiacritics strips combining marks after NFD decomposition.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// SlugSuffix derives a short, URL-safe suffix from t's millisecond clock.
func SlugSuffix(t time.Time) string {
	id, err := suffixEncoder.Encode([]uint64{uint64(t.UnixMilli())})
	if err != nil {
		return ""
	}
	return id
}

// WithSuffix joins a base slug and a collision suffix.
func WithSuffix(base, suffix string) string {
	if base == "" {
		return suffix
	}
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}
