package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/domain/inquiries"
)

func TestPrintFunnel(t *testing.T) {
	report := dashboard.FunnelReport{
		Status: dashboard.StatusOK,
		Metrics: inquiries.Metrics{
			TargetYear:           2026,
			TotalInquiries:       120,
			Booked:               45,
			ConversionRateSimple: 37.5,
			ConversionRate:       52.3,
			HouseBookings:        3,
			ByResolution:         map[string]int{"Booked": 45, "Didn't Book": 60},
			BySource: map[string]inquiries.SegmentStats{
				"Website": {Total: 80, Booked: 30, Rate: 42.9, HasRate: true},
			},
			LeadTimes: map[string]inquiries.TimingStats{
				"Booked": {Count: 40, AvgDays: 55.2, MedianDays: 48},
			},
		},
	}

	buf := new(bytes.Buffer)
	printFunnel(buf, report)

	output := buf.String()
	for _, expected := range []string{
		"Inquiry funnel for 2026",
		"Inquiries:           120",
		"Booked:              45",
		"37.5% simple, 52.3% adjusted",
		"House handoffs:      3",
		"Didn't Book",
		"Website",
		"42.9%",
		"avg 55.2 days, median 48 days",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("expected report to contain %q, got:\n%s", expected, output)
		}
	}
}

func TestPrintFunnelNoData(t *testing.T) {
	buf := new(bytes.Buffer)
	printFunnel(buf, dashboard.FunnelReport{Status: dashboard.StatusNoData})

	if !strings.Contains(buf.String(), "No inquiries recorded") {
		t.Errorf("expected soft empty state, got:\n%s", buf.String())
	}
}
