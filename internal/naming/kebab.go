package naming

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// whitespaceRun matches ASCII whitespace, vertical tab and Unicode
	// separators. Each run collapses to a single hyphen.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}]+`)

	// camelHump matches a lowercase letter directly followed by an uppercase
	// one, the boundary where a hyphen is inserted.
	camelHump = regexp.MustCompile(`([a-z])([A-Z])`)

	// upperASCII is the trigger for ancestor-directory renames.
	upperASCII = regexp.MustCompile(`[A-Z]`)
)

// Normalize converts s to kebab-case:
//  1. every run of whitespace becomes a single hyphen
//  2. a hyphen is inserted between a lowercase and a following uppercase letter
//  3. the whole result is lowercased
//
// Normalize is total and idempotent: Normalize(Normalize(s)) == Normalize(s).
// Path separators are left alone, so it can be applied to a single segment
// or to a whole relative path.
//
//	Normalize("MyWidget")           // "my-widget"
//	Normalize("../Components/Avatar") // "../components/avatar"
//	Normalize("My  Photos")         // "my-photos"
func Normalize(s string) string {
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = camelHump.ReplaceAllString(s, "${1}-${2}")
	return Lower(s)
}

// Lower lowercases s without any other transformation. Ancestor directories
// are renamed with Lower rather than Normalize.
func Lower(s string) string {
	// A Caser keeps internal state, so a fresh one is created per call.
	return cases.Lower(language.Und).String(s)
}

// HasUpper reports whether s contains an ASCII uppercase letter.
func HasUpper(s string) bool {
	return upperASCII.MatchString(s)
}
