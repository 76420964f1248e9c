// Package inquiries implements the booking-record reconciliation and funnel
// analytics over the inquiry tracker rows. All operations are pure functions
// over their input rows; nothing is persisted between calls.
package inquiries

import (
	"strings"

	"github.com/bigfun-dj/opsboard/internal/dates"
)

// Canonical resolution outcomes. Unrecognized resolution text is passed
// through verbatim rather than collapsed into a bucket.
const (
	ResolutionBooked    = "Booked"
	ResolutionDidntBook = "Didn't Book"
	ResolutionFull      = "Full"
	ResolutionCold      = "Cold"
	ResolutionTurnDown  = "We turn down"
	ResolutionCanceled  = "Canceled"
)

// Engagement levels, ordered by typical funnel depth.
const (
	InteractionNever = "Never acknowledged"
	InteractionOnly  = "Only acknowledged"
	InteractionEmail = "Meaningful email interaction"
	InteractionCall  = "Had phone call/video chat"
)

var knownResolutions = []string{
	ResolutionBooked,
	ResolutionDidntBook,
	ResolutionFull,
	ResolutionCold,
	ResolutionTurnDown,
	ResolutionCanceled,
}

// Record is one row of the inquiry tracker. All fields hold the raw cell
// text; date fields may be absent or malformed and are resolved lazily by
// the computations that need them.
type Record struct {
	Timestamp      string
	EventDate      string
	Venue          string
	Resolution     string
	Interaction    string
	InitialContact string
	InquiryDate    string
	DecisionDate   string
}

// Inquiry tracker column names. Duplicate headers are uniqued upstream by
// suffixing _N; those synthetic columns are simply never read here.
const (
	colTimestamp      = "Timestamp"
	colEventDate      = "Event Date"
	colVenue          = "Venue"
	colResolution     = "Resolution"
	colInteraction    = "Level of interaction"
	colInitialContact = "Initial Contact"
	colInquiryDate    = "Inquiry Date"
	colDecisionDate   = "Decision Date"
)

// FromTable converts raw sheet rows (column name to cell text) into Records.
// Unrecognized columns are ignored.
func FromTable(rows []map[string]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Timestamp:      row[colTimestamp],
			EventDate:      row[colEventDate],
			Venue:          row[colVenue],
			Resolution:     row[colResolution],
			Interaction:    row[colInteraction],
			InitialContact: row[colInitialContact],
			InquiryDate:    row[colInquiryDate],
			DecisionDate:   row[colDecisionDate],
		})
	}
	return records
}

// CanonicalResolution maps resolution text onto its canonical spelling,
// matching case- and whitespace-insensitively. Unrecognized text is returned
// trimmed but otherwise verbatim.
func CanonicalResolution(text string) string {
	normalized := dates.Normalize(text)
	for _, known := range knownResolutions {
		if strings.EqualFold(normalized, known) {
			return known
		}
	}
	return normalized
}

// MatchesInteraction reports whether a record's engagement level matches the
// target level. Sheet entries abbreviate or extend the canonical labels, so
// the match is case-insensitive and bidirectional on substrings.
func MatchesInteraction(recorded, target string) bool {
	r := strings.ToLower(dates.Normalize(recorded))
	t := strings.ToLower(dates.Normalize(target))
	if r == "" || t == "" {
		return false
	}
	return strings.Contains(r, t) || strings.Contains(t, r)
}
