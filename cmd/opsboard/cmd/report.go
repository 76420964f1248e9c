package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bigfun-dj/opsboard/internal/config"
	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/domain/inquiries"
	"github.com/spf13/cobra"
)

var (
	reportYear int
	reportJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the inquiry funnel report",
	Long: `Fetch the inquiry log, reconcile duplicate rows, and print the funnel
report for the target year.

Examples:
  # Current-year report
  opsboard report

  # A specific year, as JSON
  opsboard report --year 2025 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.OutOrStdout())
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "target event year (default: current year)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit the raw report as JSON")
}

func runReport(out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := config.NewLogger(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}

	year := reportYear
	if year == 0 {
		year = time.Now().Year()
	}

	report, err := svc.FunnelForYear(ctx, year)
	if err != nil {
		return err
	}

	if reportJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printFunnel(out, report)
	return nil
}

func printFunnel(out io.Writer, report dashboard.FunnelReport) {
	m := report.Metrics

	fmt.Fprintf(out, "Inquiry funnel for %d\n\n", m.TargetYear)
	if report.Status != dashboard.StatusOK {
		fmt.Fprintln(out, "No inquiries recorded for the target year yet.")
		return
	}

	fmt.Fprintf(out, "Inquiries:           %d\n", m.TotalInquiries)
	fmt.Fprintf(out, "Booked:              %d\n", m.Booked)
	fmt.Fprintf(out, "Conversion:          %.1f%% simple, %.1f%% adjusted\n", m.ConversionRateSimple, m.ConversionRate)
	fmt.Fprintf(out, "House handoffs:      %d\n", m.HouseBookings)
	fmt.Fprintf(out, "Duplicates removed:  %d\n", report.Dedup.Removed())

	if len(m.ByResolution) > 0 {
		fmt.Fprintf(out, "\nBy resolution:\n")
		for _, name := range sortedKeys(m.ByResolution) {
			fmt.Fprintf(out, "  %-24s %d\n", name, m.ByResolution[name])
		}
	}

	printSegments(out, "By initial contact", m.BySource)
	printSegments(out, "By level of interaction", m.ByInteraction)
	printTimings(out, "Lead times (inquiry to event)", m.LeadTimes)
	printTimings(out, "Days to decision", m.DaysToDecision)

	if len(m.MissingInquiryDate) > 0 {
		fmt.Fprintf(out, "\nRows missing an inquiry date (sample): %d\n", len(m.MissingInquiryDate))
	}
	if len(m.MissingDecisionDate) > 0 {
		fmt.Fprintf(out, "Rows missing a decision date (sample): %d\n", len(m.MissingDecisionDate))
	}
}

func printSegments(out io.Writer, title string, segments map[string]inquiries.SegmentStats) {
	if len(segments) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, name := range sortedSegKeys(segments) {
		seg := segments[name]
		if seg.HasRate {
			fmt.Fprintf(out, "  %-24s %3d inquiries, %3d booked, %5.1f%%\n", name, seg.Total, seg.Booked, seg.Rate)
		} else {
			fmt.Fprintf(out, "  %-24s %3d inquiries, %3d booked\n", name, seg.Total, seg.Booked)
		}
	}
}

func printTimings(out io.Writer, title string, timings map[string]inquiries.TimingStats) {
	if len(timings) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, name := range sortedTimingKeys(timings) {
		ts := timings[name]
		fmt.Fprintf(out, "  %-24s n=%d, avg %.1f days, median %d days\n", name, ts.Count, ts.AvgDays, ts.MedianDays)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSegKeys(m map[string]inquiries.SegmentStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTimingKeys(m map[string]inquiries.TimingStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
