package inquiries

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bigfun-dj/opsboard/internal/dates"
)

// daysPerMonth converts day spans into approximate months for reporting.
const daysPerMonth = 30.44

// missingDateSampleLimit caps the diagnostic lists of event/venue pairs with
// absent inquiry or decision dates.
const missingDateSampleLimit = 10

// SegmentStats is the conversion breakdown for one lead source or
// engagement level. AdjustedTotal excludes capacity-constrained outcomes
// (Full, We turn down); Rate is only meaningful when HasRate is set.
type SegmentStats struct {
	Total         int     `json:"total"`
	AdjustedTotal int     `json:"adjusted_total"`
	Booked        int     `json:"booked"`
	Rate          float64 `json:"conversion_rate"`
	HasRate       bool    `json:"has_rate"`
}

// TimingStats summarizes a day-span distribution for one resolution.
// The median is the lower of the two central values on even-sized buckets.
// Month figures are populated for lead times only.
type TimingStats struct {
	Count        int     `json:"count"`
	AvgDays      float64 `json:"avg_days"`
	MedianDays   int     `json:"median_days"`
	AvgMonths    float64 `json:"avg_months,omitempty"`
	MedianMonths float64 `json:"median_months,omitempty"`
}

// Metrics is the computed funnel report. A zero-value Metrics means
// "insufficient data", never an error state.
type Metrics struct {
	TargetYear int `json:"target_year"`

	TotalInquiries int            `json:"total_inquiries"`
	Booked         int            `json:"booked"`
	DidntBook      int            `json:"didnt_book"`
	Full           int            `json:"full"`
	Cold           int            `json:"cold"`
	WeTurnDown     int            `json:"we_turn_down"`
	Canceled       int            `json:"canceled"`
	ByResolution   map[string]int `json:"by_resolution,omitempty"`

	ConversionRateSimple  float64 `json:"conversion_rate_simple"`
	ConversionRate        float64 `json:"conversion_rate"`
	ColdNeverAcknowledged int     `json:"cold_never_acknowledged"`

	BySource      map[string]SegmentStats `json:"by_source,omitempty"`
	ByInteraction map[string]SegmentStats `json:"by_interaction,omitempty"`

	LeadTimes      map[string]TimingStats `json:"lead_times,omitempty"`
	DaysToDecision map[string]TimingStats `json:"days_to_decision,omitempty"`

	// HouseBookings counts partner-venue handoffs, which never enter any
	// funnel denominator.
	HouseBookings int `json:"house_bookings"`

	// Data-entry gap samples (up to 10 event/venue pairs per field).
	MissingInquiryDate  []string `json:"missing_inquiry_date,omitempty"`
	MissingDecisionDate []string `json:"missing_decision_date,omitempty"`
}

// FunnelCalculator computes conversion and timing metrics over the
// reconciled, date-resolved record set. HouseVenues holds substring
// patterns identifying partner venues whose zero-engagement bookings are
// handoffs rather than sales conversions.
type FunnelCalculator struct {
	HouseVenues []string
}

// ComputeFunnel builds the metrics report for records whose event date falls
// in targetYear. Only records carrying both a parseable inquiry date and
// decision date participate in counts and rates; the rest surface in the
// missing-date diagnostics. Empty input yields the zero report.
func (c FunnelCalculator) ComputeFunnel(records []Record, targetYear int) Metrics {
	m := Metrics{TargetYear: targetYear}

	type scoped struct {
		rec        Record
		resolution string
		eventDate  int64 // unix days
		inquiry    int64
		decision   int64
	}
	var inScope []scoped

	for _, rec := range records {
		eventDate, ok := dates.Resolve(rec.EventDate)
		if !ok || eventDate.Year() != targetYear {
			continue
		}

		resolution := CanonicalResolution(rec.Resolution)
		if c.isHouseHandoff(rec, resolution) {
			m.HouseBookings++
			continue
		}

		inquiry, inquiryOK := dates.Resolve(rec.InquiryDate)
		decision, decisionOK := dates.Resolve(rec.DecisionDate)
		if !inquiryOK {
			m.MissingInquiryDate = appendSample(m.MissingInquiryDate, rec)
		}
		if !decisionOK {
			m.MissingDecisionDate = appendSample(m.MissingDecisionDate, rec)
		}
		if !inquiryOK || !decisionOK {
			continue
		}

		inScope = append(inScope, scoped{
			rec:        rec,
			resolution: resolution,
			eventDate:  unixDays(eventDate),
			inquiry:    unixDays(inquiry),
			decision:   unixDays(decision),
		})
	}

	if len(inScope) == 0 {
		return m
	}

	m.ByResolution = make(map[string]int)
	for _, s := range inScope {
		m.TotalInquiries++
		m.ByResolution[s.resolution]++
		// The exclusion takes exact matches only. Abbreviated cells still
		// group under the interaction breakdown via MatchesInteraction but
		// stay in the adjusted denominator.
		if s.resolution == ResolutionCold && strings.EqualFold(dates.Normalize(s.rec.Interaction), InteractionNever) {
			m.ColdNeverAcknowledged++
		}
	}
	m.Booked = m.ByResolution[ResolutionBooked]
	m.DidntBook = m.ByResolution[ResolutionDidntBook]
	m.Full = m.ByResolution[ResolutionFull]
	m.Cold = m.ByResolution[ResolutionCold]
	m.WeTurnDown = m.ByResolution[ResolutionTurnDown]
	m.Canceled = m.ByResolution[ResolutionCanceled]

	if m.TotalInquiries > 0 {
		m.ConversionRateSimple = float64(m.Booked) / float64(m.TotalInquiries) * 100
	}
	adjusted := m.TotalInquiries - m.Full - m.WeTurnDown - m.ColdNeverAcknowledged
	if adjusted > 0 {
		m.ConversionRate = float64(m.Booked) / float64(adjusted) * 100
	}

	m.BySource = make(map[string]SegmentStats)
	m.ByInteraction = make(map[string]SegmentStats)
	leadTimes := make(map[string][]int)
	decisionTimes := make(map[string][]int)

	for _, s := range inScope {
		addSegment(m.BySource, dates.Normalize(s.rec.InitialContact), s.resolution)
		addSegment(m.ByInteraction, dates.Normalize(s.rec.Interaction), s.resolution)

		// Negative spans are data-entry errors and are dropped from the
		// distributions only; the record stays in the counts above.
		if lead := int(s.eventDate - s.inquiry); lead >= 0 {
			leadTimes[s.resolution] = append(leadTimes[s.resolution], lead)
		}
		if decision := int(s.decision - s.inquiry); decision >= 0 {
			decisionTimes[s.resolution] = append(decisionTimes[s.resolution], decision)
		}
	}
	finalizeSegments(m.BySource)
	finalizeSegments(m.ByInteraction)

	m.LeadTimes = make(map[string]TimingStats)
	for resolution, days := range leadTimes {
		m.LeadTimes[resolution] = summarize(days, true)
	}
	m.DaysToDecision = make(map[string]TimingStats)
	for resolution, days := range decisionTimes {
		m.DaysToDecision[resolution] = summarize(days, false)
	}

	return m
}

func (c FunnelCalculator) isHouseHandoff(rec Record, resolution string) bool {
	if resolution != ResolutionBooked || !MatchesInteraction(rec.Interaction, InteractionNever) {
		return false
	}
	venue := strings.ToLower(dates.Normalize(rec.Venue))
	for _, pattern := range c.HouseVenues {
		p := strings.ToLower(dates.Normalize(pattern))
		if p != "" && strings.Contains(venue, p) {
			return true
		}
	}
	return false
}

func appendSample(samples []string, rec Record) []string {
	if len(samples) >= missingDateSampleLimit {
		return samples
	}
	return append(samples, fmt.Sprintf("%s / %s", dates.Normalize(rec.EventDate), dates.Normalize(rec.Venue)))
}

func addSegment(segments map[string]SegmentStats, key, resolution string) {
	s := segments[key]
	s.Total++
	// Capacity-constrained outcomes are excluded from segment denominators.
	if resolution != ResolutionFull && resolution != ResolutionTurnDown {
		s.AdjustedTotal++
	}
	if resolution == ResolutionBooked {
		s.Booked++
	}
	segments[key] = s
}

func finalizeSegments(segments map[string]SegmentStats) {
	for key, s := range segments {
		if s.AdjustedTotal > 0 {
			s.Rate = float64(s.Booked) / float64(s.AdjustedTotal) * 100
			s.HasRate = true
		}
		segments[key] = s
	}
}

// summarize reduces a day-span distribution to count, mean, and lower
// median, optionally expressed in 30.44-day months.
func summarize(days []int, withMonths bool) TimingStats {
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)

	sum := 0
	for _, d := range sorted {
		sum += d
	}
	median := sorted[(len(sorted)-1)/2]

	stats := TimingStats{
		Count:      len(sorted),
		AvgDays:    float64(sum) / float64(len(sorted)),
		MedianDays: median,
	}
	if withMonths {
		stats.AvgMonths = stats.AvgDays / daysPerMonth
		stats.MedianMonths = float64(median) / daysPerMonth
	}
	return stats
}

// unixDays converts a UTC-midnight date into a whole-day index so that date
// subtraction is immune to DST arithmetic.
func unixDays(t time.Time) int64 {
	return t.Unix() / 86400
}
