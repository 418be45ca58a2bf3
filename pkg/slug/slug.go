// Package slug turns arbitrary Unicode strings into URL-safe ASCII slugs for
// category paths (e.g. "Vehicles & Cars" -> "vehicles-cars").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// From normalizes to NFD, strips combining marks, lowercases, and maps
// everything non-alphanumeric to hyphens.
func From(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, _ := transform.String(t, s)
	out = strings.ToLower(out)
	out = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, out)
	out = multiHyphen.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
