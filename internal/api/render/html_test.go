package render

import (
	"strings"
	"testing"

	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/domain/inquiries"
	"github.com/bigfun-dj/opsboard/internal/domain/pace"
)

func TestBoardRendersAllSections(t *testing.T) {
	paceReport := dashboard.PaceReport{
		Status:     dashboard.StatusOK,
		Comparison: pace.Comparison{Day: "Feb 3", Current: 41, Prior: 35, Delta: 6},
	}
	funnelReport := dashboard.FunnelReport{
		Status: dashboard.StatusOK,
		Metrics: inquiries.Metrics{
			TargetYear:           2026,
			TotalInquiries:       120,
			Booked:               45,
			ConversionRateSimple: 37.5,
			ConversionRate:       52.3,
			BySource: map[string]inquiries.SegmentStats{
				"Website":  {Total: 80, AdjustedTotal: 70, Booked: 30, Rate: 42.9, HasRate: true},
				"Referral": {Total: 40, AdjustedTotal: 0, Booked: 15},
			},
		},
	}
	events := []dashboard.UpcomingEvent{
		{Date: "9/5/2026", Venue: "Oak Hall", Client: "Smith", Initials: "HK"},
	}

	html := Board(paceReport, funnelReport, events, "v1.2.3")

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Booking Pace",
		"Through Feb 3",
		"+6",
		"Inquiry Funnel (2026)",
		"37.5%",
		"52.3%",
		"Website",
		"42.9%",
		"Oak Hall",
		"HK",
		"v1.2.3",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("board HTML missing %q", want)
		}
	}

	// Segments without a computable rate render as a dash, not 0%.
	if !strings.Contains(html, "&mdash;") {
		t.Error("expected dash for segment without a rate")
	}
}

func TestBoardNegativeDeltaStyling(t *testing.T) {
	report := dashboard.PaceReport{
		Status:     dashboard.StatusOK,
		Comparison: pace.Comparison{Day: "Mar 1", Current: 20, Prior: 28, Delta: -8},
	}

	html := Board(report, dashboard.FunnelReport{}, nil, "dev")

	if !strings.Contains(html, "delta-down") {
		t.Error("expected delta-down class for negative pace")
	}
	if !strings.Contains(html, ">-8<") {
		t.Error("expected raw negative delta without plus sign")
	}
}

func TestBoardSoftStates(t *testing.T) {
	paceReport := dashboard.PaceReport{Status: dashboard.StatusNoData, Reason: `column "2026" not found`}

	html := Board(paceReport, dashboard.FunnelReport{Status: dashboard.StatusNoData}, nil, "dev")

	if !strings.Contains(html, "Not enough data yet") {
		t.Error("expected pace soft state message")
	}
	if !strings.Contains(html, "No inquiries recorded") {
		t.Error("expected funnel soft state message")
	}
	if !strings.Contains(html, "No events in the lookahead window") {
		t.Error("expected empty events message")
	}
	// Reason text is escaped, not raw.
	if !strings.Contains(html, "&#34;2026&#34;") {
		t.Error("expected escaped quotes in reason text")
	}
}
