// Package render builds the server-rendered operations board page.
package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/domain/inquiries"
)

// Board renders the full operations board: the pace readout, the funnel
// summary, and the upcoming-events strip.
func Board(pace dashboard.PaceReport, funnel dashboard.FunnelReport, events []dashboard.UpcomingEvent, version string) string {
	var sections []string
	sections = append(sections, buildPaceSection(pace))
	sections = append(sections, buildFunnelSection(funnel))
	sections = append(sections, buildEventsSection(events))
	return buildPage("Big Fun Operations Board", strings.Join(sections, "\n"), version)
}

func buildPage(title, body, version string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #333; }
    h1 { margin-bottom: 0.5rem; }
    h2 { margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: 0.25rem; }
    .cards { display: flex; gap: 1rem; flex-wrap: wrap; }
    .card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem 1.5rem; min-width: 10rem; }
    .card .label { color: #666; font-size: 0.85rem; text-transform: uppercase; letter-spacing: 0.05em; }
    .card .value { font-size: 1.8rem; font-weight: 600; }
    .delta-up { color: #157f3b; }
    .delta-down { color: #b42318; }
    .muted { color: #666; }
    table { border-collapse: collapse; width: 100%%; margin-top: 0.5rem; }
    th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #eee; }
    th { color: #555; font-size: 0.9rem; }
    footer { margin-top: 3rem; padding-top: 1rem; border-top: 1px solid #ddd; color: #666; font-size: 0.9rem; }
  </style>
</head>
<body>
  <h1>%s</h1>
%s
  <footer>
    <p>Big Fun DJ operations board %s</p>
  </footer>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), body, html.EscapeString(version))
}

func buildPaceSection(report dashboard.PaceReport) string {
	if report.Status != dashboard.StatusOK {
		return fmt.Sprintf(`  <h2>Booking Pace</h2>
  <p class="muted">Not enough data yet: %s</p>`, html.EscapeString(report.Reason))
	}

	c := report.Comparison
	deltaClass := "delta-up"
	deltaText := fmt.Sprintf("+%d", c.Delta)
	if c.Delta < 0 {
		deltaClass = "delta-down"
		deltaText = fmt.Sprintf("%d", c.Delta)
	}

	return fmt.Sprintf(`  <h2>Booking Pace</h2>
  <p class="muted">Through %s</p>
  <div class="cards">
    <div class="card"><div class="label">This Year</div><div class="value">%d</div></div>
    <div class="card"><div class="label">Last Year</div><div class="value">%d</div></div>
    <div class="card"><div class="label">Pace</div><div class="value %s">%s</div></div>
  </div>`, html.EscapeString(c.Day), c.Current, c.Prior, deltaClass, html.EscapeString(deltaText))
}

func buildFunnelSection(report dashboard.FunnelReport) string {
	if report.Status != dashboard.StatusOK {
		return `  <h2>Inquiry Funnel</h2>
  <p class="muted">No inquiries recorded for the target year yet.</p>`
	}

	m := report.Metrics
	var b strings.Builder
	fmt.Fprintf(&b, `  <h2>Inquiry Funnel (%d)</h2>
  <div class="cards">
    <div class="card"><div class="label">Inquiries</div><div class="value">%d</div></div>
    <div class="card"><div class="label">Booked</div><div class="value">%d</div></div>
    <div class="card"><div class="label">Conversion</div><div class="value">%.1f%%</div></div>
    <div class="card"><div class="label">Adjusted</div><div class="value">%.1f%%</div></div>
    <div class="card"><div class="label">House Handoffs</div><div class="value">%d</div></div>
  </div>`, m.TargetYear, m.TotalInquiries, m.Booked, m.ConversionRateSimple, m.ConversionRate, m.HouseBookings)

	if len(m.BySource) > 0 {
		b.WriteString("\n")
		b.WriteString(buildSegmentTable("By Initial Contact", m.BySource))
	}
	if len(m.ByInteraction) > 0 {
		b.WriteString("\n")
		b.WriteString(buildSegmentTable("By Level of Interaction", m.ByInteraction))
	}
	if report.Dedup.Removed() > 0 {
		fmt.Fprintf(&b, "\n  <p class=\"muted\">%d duplicate spreadsheet rows collapsed.</p>", report.Dedup.Removed())
	}
	return b.String()
}

func buildSegmentTable(title string, segments map[string]inquiries.SegmentStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, `  <h2>%s</h2>
  <table>
    <tr><th>Segment</th><th>Inquiries</th><th>Booked</th><th>Rate</th></tr>`, html.EscapeString(title))
	for _, name := range sortedSegmentNames(segments) {
		seg := segments[name]
		rate := "&mdash;"
		if seg.HasRate {
			rate = fmt.Sprintf("%.1f%%", seg.Rate)
		}
		fmt.Fprintf(&b, "\n    <tr><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(name), seg.Total, seg.Booked, rate)
	}
	b.WriteString("\n  </table>")
	return b.String()
}

func sortedSegmentNames(segments map[string]inquiries.SegmentStats) []string {
	names := make([]string, 0, len(segments))
	for name := range segments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildEventsSection(events []dashboard.UpcomingEvent) string {
	if len(events) == 0 {
		return `  <h2>Upcoming Events</h2>
  <p class="muted">No events in the lookahead window.</p>`
	}

	var b strings.Builder
	b.WriteString(`  <h2>Upcoming Events</h2>
  <table>
    <tr><th>Date</th><th>Venue</th><th>Client</th><th>DJ</th></tr>`)
	for _, ev := range events {
		fmt.Fprintf(&b, "\n    <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(ev.Date), html.EscapeString(ev.Venue), html.EscapeString(ev.Client), html.EscapeString(ev.Initials))
	}
	b.WriteString("\n  </table>")
	return b.String()
}
