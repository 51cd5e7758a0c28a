// Package prefix handles detection of the leading chronological prefix in
// folder names.
package prefix

import (
	"regexp"
	"strconv"
)

// prefixPattern matches a leading "YYYY-MM - " segment: exactly four digits,
// a dash, exactly two digits, then a dash with optional surrounding
// whitespace.
var prefixPattern = regexp.MustCompile(`^(\d{4})-(\d{2})\s*-\s*`)

// leadingDatePattern is the looser guard used by the date-prefix pipeline:
// any name that already starts with digits4-dash-digits2 counts as prefixed.
var leadingDatePattern = regexp.MustCompile(`^\d{4}-\d{2}`)

// Match represents the result of extracting a chronological prefix from a
// folder name. Prefix holds the matched substring verbatim so composers can
// preserve it exactly.
type Match struct {
	Matched   bool
	Year      int
	Month     int
	Prefix    string
	Remainder string
}

// Extract detects a leading "YYYY-MM - " prefix in the folder name.
// Unmatched names return Match{Matched: false}; callers decide whether that
// means "skip the folder" or "treat the whole name as remainder".
func Extract(name string) Match {
	m := prefixPattern.FindStringSubmatch(name)
	if m == nil {
		return Match{}
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	return Match{
		Matched:   true,
		Year:      year,
		Month:     month,
		Prefix:    m[0],
		Remainder: name[len(m[0]):],
	}
}

// HasDatePrefix reports whether the name already starts with a
// four-digit-dash-two-digit pattern.
func HasDatePrefix(name string) bool {
	return leadingDatePattern.MatchString(name)
}
