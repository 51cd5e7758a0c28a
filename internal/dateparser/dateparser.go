// Package dateparser handles locale-pinned parsing of date-taken text for
// photoflow.
package dateparser

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// DateParseErrorType represents the type of date parsing error.
type DateParseErrorType string

const (
	UnknownLocale  DateParseErrorType = "UNKNOWN_LOCALE"
	UnparsableText DateParseErrorType = "UNPARSABLE_TEXT"
	BlankText      DateParseErrorType = "BLANK_TEXT"
)

// DateParseError represents an error that occurred during date parsing.
// Text carries the raw offending string for locale/format debugging.
type DateParseError struct {
	Type DateParseErrorType
	Text string
}

func (e *DateParseError) Error() string {
	switch e.Type {
	case UnknownLocale:
		return fmt.Sprintf("unknown locale: %s", e.Text)
	case UnparsableText:
		return fmt.Sprintf("unparsable date text: %q", e.Text)
	case BlankText:
		return "blank date text"
	default:
		return fmt.Sprintf("date parse error: %q", e.Text)
	}
}

// DefaultLayouts returns the layouts tried against date-taken text, in order.
// The first is the canonical EXIF timestamp; the rest cover the day-first
// numeric and named-month forms produced by media-importing tools.
func DefaultLayouts() []string {
	return []string{
		"2006:01:02 15:04:05",
		"02/01/2006 15:04",
		"02/01/2006 3:04 PM",
		"2/1/2006 15:04",
		"02/01/2006",
		"2 January 2006 15:04",
		"2 January 2006",
	}
}

// Parser parses date-taken text using a fixed locale. The locale is pinned
// at construction so results never depend on the environment the tool runs
// in.
type Parser struct {
	locale  monday.Locale
	layouts []string
	loc     *time.Location
}

// New creates a Parser for the given locale name (e.g. "el_GR"). The layouts
// slice overrides DefaultLayouts when non-empty.
func New(locale string, layouts []string) (*Parser, error) {
	candidate := monday.Locale(locale)
	supported := false
	for _, l := range monday.ListLocales() {
		if l == candidate {
			supported = true
			break
		}
	}
	if !supported {
		return nil, &DateParseError{Type: UnknownLocale, Text: locale}
	}

	if len(layouts) == 0 {
		layouts = DefaultLayouts()
	}

	return &Parser{
		locale:  candidate,
		layouts: layouts,
		loc:     time.Local,
	}, nil
}

// Parse parses date-taken text. Directional control marks are stripped first;
// the remaining text is tried against each configured layout in order.
func (p *Parser) Parse(text string) (time.Time, error) {
	cleaned := strings.TrimSpace(StripDirectionalMarks(text))
	if cleaned == "" {
		return time.Time{}, &DateParseError{Type: BlankText}
	}

	for _, layout := range p.layouts {
		t, err := monday.ParseInLocation(layout, cleaned, p.loc, p.locale)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, &DateParseError{Type: UnparsableText, Text: text}
}

// StripDirectionalMarks removes the invisible bidirectional control marks
// that metadata APIs embed around date fields. Left in place they make every
// layout fail to match.
func StripDirectionalMarks(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u200f': // LTR / RTL mark
			return -1
		case '\u202a', '\u202b', '\u202c', '\u202d', '\u202e': // embedding and override controls
			return -1
		}
		return r
	}, s)
}
