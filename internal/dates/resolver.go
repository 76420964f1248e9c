// Package dates resolves the heterogeneous date text found in manually
// entered spreadsheet cells. Every resolver reports failure as an explicit
// boolean; a cell that cannot be parsed must never abort the caller.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
)

// collapseSpaces matches two or more consecutive whitespace characters.
// Sheet labels frequently carry irregular spacing ("Feb  3").
var collapseSpaces = regexp.MustCompile(`\s{2,}`)

// dateLayouts is the fixed priority order for plain date cells: explicit
// month/day/2-digit-year first, then month/day/4-digit-year, then
// year-month-day. Non-padded layouts accept both "2/3/26" and "02/03/26".
var dateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"2006-1-2",
}

// timestampLayouts covers the submission-timestamp column, which mixes
// date-only and date-plus-time entries depending on how the row was created.
var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
}

// Normalize trims the input and collapses internal runs of whitespace to a
// single space.
func Normalize(text string) string {
	return collapseSpaces.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Resolve converts a textual date into a calendar date. It tries each fixed
// layout in priority order and falls back to a permissive generic parse.
// The boolean is false when the text is unparseable; callers must treat
// unparseable as "exclude from date-dependent calculations", not as an error.
func Resolve(text string) (time.Time, bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return permissive(normalized)
}

// ResolveTimestamp parses a submission timestamp. Timestamp cells usually
// carry a time component, so the datetime layouts run before the plain date
// chain.
func ResolveTimestamp(text string) (time.Time, bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return Resolve(normalized)
}

// ResolveDayLabel parses a short day label such as "Feb 3" (no leading zero)
// by combining it with the caller-supplied year.
func ResolveDayLabel(label string, year int) (time.Time, bool) {
	normalized := Normalize(label)
	if normalized == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", normalized, year)); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// permissive is the final fallback in the resolution chain: a generic
// natural-language parse. Kept last because it is far slower than the fixed
// layouts and can guess ambiguous orderings.
func permissive(text string) (time.Time, bool) {
	dt, err := dateparser.Parse(nil, text)
	if err != nil {
		return time.Time{}, false
	}
	return dt.Time, true
}
