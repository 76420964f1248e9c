package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bigfun-dj/opsboard/internal/config"
	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/spf13/cobra"
)

var paceJSON bool

var paceCmd = &cobra.Command{
	Use:   "pace",
	Short: "Print the year-over-year booking pace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPace(cmd.OutOrStdout())
	},
}

func init() {
	paceCmd.Flags().BoolVar(&paceJSON, "json", false, "emit the raw report as JSON")
}

func runPace(out io.Writer) error {
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

	report, err := svc.Pace(ctx)
	if err != nil {
		return err
	}

	if paceJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Status != dashboard.StatusOK {
		fmt.Fprintf(out, "Booking pace unavailable: %s\n", report.Reason)
		return nil
	}

	c := report.Comparison
	sign := "+"
	if c.Delta < 0 {
		sign = ""
	}
	fmt.Fprintf(out, "Booking pace through %s\n", c.Day)
	fmt.Fprintf(out, "  This year: %d\n", c.Current)
	fmt.Fprintf(out, "  Last year: %d\n", c.Prior)
	fmt.Fprintf(out, "  Pace:      %s%d\n", sign, c.Delta)
	return nil
}
