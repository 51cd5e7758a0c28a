// Package classifier handles keyword classification of folder names for
// photoflow.
package classifier

import (
	"regexp"
	"strconv"
	"strings"
)

// Category is the event category a folder classifies into.
type Category string

const (
	Christmas Category = "Christmas"
	Easter    Category = "Easter"
	Birthday  Category = "Birthday"
)

// Rule is the naming rule selected for a folder: the category, the year to
// use, and for Birthday the cleaned base name to embed in the tag.
type Rule struct {
	Category Category
	Year     int
	BaseName string
}

// FallbackYear lazily supplies the year of the folder's oldest file date.
// It is consulted only when neither the folder name nor its prefix carries
// a year, so callers can defer the (expensive) date resolution behind it.
type FallbackYear func() (int, bool)

// categoryRules is the ordered predicate table, evaluated first-match-wins.
// Matching is case-sensitive on purpose: the keywords are fixed literals the
// library owner types, including the long-standing "Christmass" misspelling.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{Christmas, []string{"Christmas", "Christmass"}},
	{Easter, []string{"Pasxa", "Easter"}},
}

// yearPattern matches a standalone four-digit run.
var yearPattern = regexp.MustCompile(`\b\d{4}\b`)

// trailingParenPattern matches a trailing parenthesized number, the
// disambiguation suffix like "(2)".
var trailingParenPattern = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// trailingYearPattern matches a trailing standalone four-digit year.
var trailingYearPattern = regexp.MustCompile(`\s*\b\d{4}\s*$`)

// Classify classifies the post-prefix remainder of a folder name into
// exactly one Rule.
//
// Year precedence is: standalone year in the remainder, then the prefix
// year, then the fallback year from the oldest file date. A user-typed year
// is the most authoritative signal; file dates are a last resort. No sanity
// check is applied to in-name years, however implausible.
//
// The second return value is false only when no year is discoverable from
// any of the three tiers.
func Classify(remainder string, prefixYear int, hasPrefixYear bool, fallback FallbackYear) (Rule, bool) {
	category := Birthday
	for _, rule := range categoryRules {
		if containsAny(remainder, rule.keywords) {
			category = rule.category
			break
		}
	}

	year, ok := selectYear(remainder, prefixYear, hasPrefixYear, fallback)
	if !ok {
		return Rule{}, false
	}

	rule := Rule{Category: category, Year: year}
	if category == Birthday {
		rule.BaseName = CleanBaseName(remainder)
	}
	return rule, true
}

// selectYear applies the three-tier year precedence.
func selectYear(remainder string, prefixYear int, hasPrefixYear bool, fallback FallbackYear) (int, bool) {
	if m := yearPattern.FindString(remainder); m != "" {
		year, _ := strconv.Atoi(m)
		return year, true
	}
	if hasPrefixYear {
		return prefixYear, true
	}
	if fallback != nil {
		return fallback()
	}
	return 0, false
}

// CleanBaseName strips a trailing standalone year and/or a trailing
// parenthesized disambiguation number, trimming surrounding whitespace.
// Both suffixes may be present in either order, so stripping repeats until
// the name is stable.
func CleanBaseName(name string) string {
	cleaned := strings.TrimSpace(name)
	for {
		next := trailingParenPattern.ReplaceAllString(cleaned, "")
		next = trailingYearPattern.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

// containsAny reports whether s contains any of the literals.
func containsAny(s string, literals []string) bool {
	for _, lit := range literals {
		if strings.Contains(s, lit) {
			return true
		}
	}
	return false
}
