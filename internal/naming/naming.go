// Package naming composes canonical folder names and produces rename
// decisions for photoflow.
package naming

import (
	"fmt"
	"regexp"

	"github.com/TsoliasPN/photo-library-workflow/internal/classifier"
	"github.com/TsoliasPN/photo-library-workflow/internal/resolver"
)

// Style selects the tag bracketing convention. Brackets is the live
// convention; Parens is the preview convention, kept distinct so a previewed
// name is visually recognizable as not-yet-applied.
type Style int

const (
	Brackets Style = iota
	Parens
)

// wrap surrounds the tag text with the style's delimiters.
func (s Style) wrap(tag string) string {
	if s == Parens {
		return "(" + tag + ")"
	}
	return "[" + tag + "]"
}

// tagLabels maps each category to the literal used inside the tag.
var tagLabels = map[classifier.Category]string{
	classifier.Christmas: "Christmas",
	classifier.Easter:    "Easter",
	classifier.Birthday:  "BIRTHDAY",
}

// categoryTagPattern detects an existing category tag in either bracketing
// convention, so a folder previewed with parens and later applied with
// brackets still counts as processed.
var categoryTagPattern = regexp.MustCompile(`[\[(](Christmas|Easter|BIRTHDAY) \d{4}[\])]`)

// ComposePrefixName returns the date-prefixed folder name:
// "YYYY-MM - {original}".
func ComposePrefixName(date resolver.Resolved, original string) string {
	return fmt.Sprintf("%04d-%02d - %s", date.Year, int(date.Month), original)
}

// ComposeTagName returns the tagged folder name. The prefix is preserved
// verbatim; Birthday tags additionally carry the cleaned base name:
//
//	{prefix}[Christmas YYYY]
//	{prefix}[Easter YYYY]
//	{prefix}[BIRTHDAY YYYY] - {cleaned name}
func ComposeTagName(pfx string, rule classifier.Rule, style Style) string {
	tag := style.wrap(fmt.Sprintf("%s %d", tagLabels[rule.Category], rule.Year))
	if rule.Category == classifier.Birthday && rule.BaseName != "" {
		return pfx + tag + " - " + rule.BaseName
	}
	return pfx + tag
}

// HasCategoryTag reports whether the name already contains a bracketed or
// parenthesized category tag.
func HasCategoryTag(name string) bool {
	return categoryTagPattern.MatchString(name)
}
