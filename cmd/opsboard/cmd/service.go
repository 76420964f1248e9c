package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bigfun-dj/opsboard/internal/config"
	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/gigfeed"
	"github.com/bigfun-dj/opsboard/internal/roster"
	"github.com/bigfun-dj/opsboard/internal/sheets"
	"github.com/rs/zerolog"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	// Override logging from flags if provided
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

// buildService wires the dashboard service from configuration: roster,
// authenticated sheets client, and gig feed client.
func buildService(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*dashboard.Service, error) {
	ros := roster.Default()
	if cfg.RosterPath != "" {
		loaded, err := roster.Load(cfg.RosterPath)
		if err != nil {
			return nil, fmt.Errorf("load roster: %w", err)
		}
		ros = loaded
		logger.Info().Str("path", cfg.RosterPath).Int("djs", len(ros.DJs)).Msg("roster loaded")
	}

	var sheetClient *sheets.Client
	if cfg.Sheets.CredentialsFile != "" {
		creds, err := os.ReadFile(cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read sheets credentials: %w", err)
		}
		sheetClient, err = sheets.NewWithServiceAccount(ctx, creds)
		if err != nil {
			return nil, fmt.Errorf("init sheets client: %w", err)
		}
	} else {
		// Unauthenticated client; only works against public sheets, which
		// is enough for local development.
		logger.Warn().Msg("SHEETS_CREDENTIALS_FILE not set, using unauthenticated sheets client")
		sheetClient = sheets.New(&http.Client{Timeout: 30 * time.Second}, "")
	}

	feedClient := gigfeed.New(cfg.GigFeed.BaseURL, logger)

	return dashboard.New(sheetClient, feedClient, cfg, ros, logger), nil
}
