package inquiries

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funnelRow builds an in-scope 2026 record with both dates populated.
func funnelRow(resolution, interaction string) Record {
	return Record{
		EventDate:      "6/20/26",
		Venue:          "Oak Hall",
		Resolution:     resolution,
		Interaction:    interaction,
		InitialContact: "Website",
		InquiryDate:    "1/10/26",
		DecisionDate:   "1/20/26",
	}
}

func TestComputeFunnelAdjustedConversion(t *testing.T) {
	records := []Record{
		funnelRow("Booked", "Had phone call/video chat"),
		funnelRow("Booked", "Had phone call/video chat"),
		funnelRow("Booked", "Meaningful email interaction"),
		funnelRow("Booked", "Meaningful email interaction"),
		funnelRow("Full", "Only acknowledged"),
		funnelRow("Full", "Only acknowledged"),
		funnelRow("We turn down", "Only acknowledged"),
		funnelRow("Cold", "Never acknowledged"),
		funnelRow("Didn't Book", "Had phone call/video chat"),
		funnelRow("Cold", "Only acknowledged"),
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)

	assert.Equal(t, 10, m.TotalInquiries)
	assert.Equal(t, 4, m.Booked)
	assert.Equal(t, 2, m.Full)
	assert.Equal(t, 1, m.WeTurnDown)
	assert.Equal(t, 1, m.ColdNeverAcknowledged)

	// Simple: 4/10. Adjusted: 4/(10-2-1-1) = 4/6.
	assert.InDelta(t, 40.0, m.ConversionRateSimple, 0.001)
	assert.InDelta(t, 66.666, m.ConversionRate, 0.001)
}

func TestComputeFunnelColdExclusionExactOnly(t *testing.T) {
	// An abbreviated cell still reflects some engagement, so it stays in
	// the adjusted denominator; only the exact label is excluded.
	records := []Record{
		funnelRow("Booked", "Had phone call/video chat"),
		funnelRow("Cold", "Never ack"),
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)

	assert.Zero(t, m.ColdNeverAcknowledged)
	assert.InDelta(t, 50.0, m.ConversionRate, 0.001)
	assert.InDelta(t, 50.0, m.ConversionRateSimple, 0.001)

	// Case and surrounding whitespace do not defeat the exact match.
	records[1] = funnelRow("Cold", "  never ACKNOWLEDGED ")
	m = FunnelCalculator{}.ComputeFunnel(records, 2026)

	assert.Equal(t, 1, m.ColdNeverAcknowledged)
	assert.InDelta(t, 100.0, m.ConversionRate, 0.001)
}

func TestComputeFunnelRateBounds(t *testing.T) {
	// Every record is capacity-constrained: adjusted denominator hits zero
	// and the rate reports 0 instead of dividing by zero.
	records := []Record{
		funnelRow("Full", "Only acknowledged"),
		funnelRow("We turn down", "Only acknowledged"),
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)
	assert.Zero(t, m.ConversionRate)
	assert.Zero(t, m.ConversionRateSimple)

	seg, ok := m.ByInteraction["Only acknowledged"]
	require.True(t, ok)
	assert.Equal(t, 2, seg.Total)
	assert.Zero(t, seg.AdjustedTotal)
	assert.False(t, seg.HasRate)
}

func TestComputeFunnelScoping(t *testing.T) {
	records := []Record{
		funnelRow("Booked", "Had phone call/video chat"),
		// Wrong year: out of scope entirely.
		{EventDate: "6/20/25", Venue: "Barn", Resolution: "Booked", InquiryDate: "1/1/25", DecisionDate: "1/2/25"},
		// Unparseable event date: out of scope entirely.
		{EventDate: "sometime in summer", Venue: "Barn", Resolution: "Booked", InquiryDate: "1/1/26", DecisionDate: "1/2/26"},
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)
	assert.Equal(t, 1, m.TotalInquiries)
	assert.Equal(t, 1, m.Booked)
}

func TestComputeFunnelMissingDateExclusion(t *testing.T) {
	missing := funnelRow("Booked", "Had phone call/video chat")
	missing.DecisionDate = ""
	missing.Venue = "Riverside Loft"

	records := []Record{
		funnelRow("Booked", "Had phone call/video chat"),
		missing,
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)

	// The record without a decision date never enters the counted set but
	// does surface in the diagnostic list.
	assert.Equal(t, 1, m.TotalInquiries)
	assert.Equal(t, 1, m.Booked)
	require.Len(t, m.MissingDecisionDate, 1)
	assert.Contains(t, m.MissingDecisionDate[0], "Riverside Loft")
	assert.Empty(t, m.MissingInquiryDate)
}

func TestComputeFunnelMissingDateSampleCap(t *testing.T) {
	var records []Record
	for i := 0; i < 15; i++ {
		r := funnelRow("Cold", "Never acknowledged")
		r.InquiryDate = ""
		r.Venue = fmt.Sprintf("Venue %d", i)
		records = append(records, r)
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)
	assert.Len(t, m.MissingInquiryDate, 10)
	assert.Zero(t, m.TotalInquiries)
}

func TestComputeFunnelHouseHandoff(t *testing.T) {
	house := funnelRow("Booked", "Never acknowledged")
	house.Venue = "The Grand House Ballroom"

	engaged := funnelRow("Booked", "Had phone call/video chat")
	engaged.Venue = "The Grand House Ballroom"

	records := []Record{house, engaged, funnelRow("Cold", "Only acknowledged")}

	m := FunnelCalculator{HouseVenues: []string{"grand house"}}.ComputeFunnel(records, 2026)

	// The zero-engagement house booking is a handoff: counted separately,
	// absent from every denominator. The engaged booking at the same venue
	// is a real conversion.
	assert.Equal(t, 1, m.HouseBookings)
	assert.Equal(t, 2, m.TotalInquiries)
	assert.Equal(t, 1, m.Booked)
}

func TestComputeFunnelTimingDistributions(t *testing.T) {
	mk := func(inquiry, event, decision string) Record {
		r := funnelRow("Booked", "Had phone call/video chat")
		r.InquiryDate = inquiry
		r.EventDate = event
		r.DecisionDate = decision
		return r
	}

	records := []Record{
		mk("1/10/26", "1/20/26", "1/13/26"), // lead 10, decision 3
		mk("1/10/26", "1/40/26", "1/15/26"), // unparseable event date: out of scope
		mk("1/10/26", "1/30/26", "1/11/26"), // lead 20, decision 1
		mk("1/10/26", "2/19/26", "1/17/26"), // lead 40, decision 7
		// Negative lead span: dropped from the distribution, kept in counts.
		mk("3/10/26", "3/1/26", "3/12/26"),
	}

	m := FunnelCalculator{}.ComputeFunnel(records, 2026)
	assert.Equal(t, 4, m.TotalInquiries)

	lead, ok := m.LeadTimes[ResolutionBooked]
	require.True(t, ok)
	assert.Equal(t, 3, lead.Count)
	assert.InDelta(t, 70.0/3.0, lead.AvgDays, 0.001)
	assert.Equal(t, 20, lead.MedianDays)
	assert.InDelta(t, 20.0/30.44, lead.MedianMonths, 0.001)

	decision, ok := m.DaysToDecision[ResolutionBooked]
	require.True(t, ok)
	assert.Equal(t, 4, decision.Count)
	// Even-sized bucket: median is the lower of the two central values.
	assert.Equal(t, 2, decision.MedianDays)
}

func TestComputeFunnelEmptyInput(t *testing.T) {
	m := FunnelCalculator{}.ComputeFunnel(nil, 2026)
	assert.Equal(t, Metrics{TargetYear: 2026}, m)
}

func TestSummarizeMedian(t *testing.T) {
	odd := summarize([]int{5, 1, 9}, false)
	assert.Equal(t, 5, odd.MedianDays)

	even := summarize([]int{4, 1, 9, 6}, false)
	assert.Equal(t, 4, even.MedianDays)
}
