// Package dashboard orchestrates the board's data flow: fetch raw rows from
// the upstream sources, reconcile and compute through the domain engines,
// and memoize the resulting reports so page loads do not hammer the sheets.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bigfun-dj/opsboard/internal/cache"
	"github.com/bigfun-dj/opsboard/internal/config"
	"github.com/bigfun-dj/opsboard/internal/domain/inquiries"
	"github.com/bigfun-dj/opsboard/internal/domain/pace"
	"github.com/bigfun-dj/opsboard/internal/gigfeed"
	"github.com/bigfun-dj/opsboard/internal/metrics"
	"github.com/bigfun-dj/opsboard/internal/roster"
	"github.com/bigfun-dj/opsboard/internal/sheets"
	"github.com/bigfun-dj/opsboard/internal/telemetry"
	"github.com/rs/zerolog"
)

const (
	// StatusOK marks a report backed by data.
	StatusOK = "ok"
	// StatusNoData marks a soft empty state the presentation layer must
	// render as "insufficient data", never as an error page.
	StatusNoData = "no_data"

	// DefaultDailyWindow is the daily chart window handlers fall back to.
	DefaultDailyWindow = 30
	// MaxDailyWindow bounds how far back the cached daily series reaches;
	// handlers trim it down to the requested window.
	MaxDailyWindow = 120
)

// SheetSource fetches raw value grids; satisfied by *sheets.Client.
type SheetSource interface {
	Values(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// EventSource fetches upcoming gigs; satisfied by *gigfeed.Client.
type EventSource interface {
	Upcoming(ctx context.Context, today time.Time, daysAhead int) ([]gigfeed.Event, error)
}

// PaceReport is the booking-pace readout plus its chart series.
type PaceReport struct {
	Status     string          `json:"status"`
	Reason     string          `json:"reason,omitempty"`
	Comparison pace.Comparison `json:"comparison"`
	Daily      []pace.Point    `json:"daily,omitempty"`
	Weekly     []pace.Point    `json:"weekly,omitempty"`
}

// FunnelReport is the funnel metrics plus the dedup diagnostic.
type FunnelReport struct {
	Status  string               `json:"status"`
	Metrics inquiries.Metrics    `json:"metrics"`
	Dedup   inquiries.DedupStats `json:"dedup"`
}

// UpcomingEvent is one row of the upcoming-events strip, with the assigned
// DJ already reduced to display initials.
type UpcomingEvent struct {
	Date     string `json:"date"`
	Venue    string `json:"venue"`
	Client   string `json:"client"`
	DJ       string `json:"dj"`
	Initials string `json:"initials"`
}

// Service computes and caches the board's reports. Safe for concurrent use.
type Service struct {
	sheetSource SheetSource
	eventSource EventSource
	sheetsCfg   config.SheetsConfig
	lookahead   int
	roster      roster.Config
	logger      zerolog.Logger
	now         func() time.Time

	paceCache   *cache.TTL[PaceReport]
	funnelCache *cache.TTL[FunnelReport]
	eventsCache *cache.TTL[[]UpcomingEvent]
}

var tracer = telemetry.GetTracer("github.com/bigfun-dj/opsboard/internal/dashboard")

// New wires a Service from its collaborators.
func New(sheetSource SheetSource, eventSource EventSource, cfg config.Config, ros roster.Config, logger zerolog.Logger) *Service {
	return &Service{
		sheetSource: sheetSource,
		eventSource: eventSource,
		sheetsCfg:   cfg.Sheets,
		lookahead:   cfg.GigFeed.LookaheadDays,
		roster:      ros,
		logger:      logger,
		now:         time.Now,
		paceCache:   cache.New[PaceReport](cfg.Cache.TTL),
		funnelCache: cache.New[FunnelReport](cfg.Cache.TTL),
		eventsCache: cache.New[[]UpcomingEvent](cfg.Cache.TTL),
	}
}

// WithClock fixes the service's notion of "now"; tests use this to make
// every date-relative computation deterministic.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now reports the service clock's current instant. Handlers use it so
// date-relative filtering agrees with the reports it applies to.
func (s *Service) Now() time.Time {
	return s.now()
}

// Refresh drops every cached report so the next request refetches.
func (s *Service) Refresh() {
	s.paceCache.Flush()
	s.funnelCache.Flush()
	s.eventsCache.Flush()
}

// Pace returns the year-over-year booking pace report.
func (s *Service) Pace(ctx context.Context) (PaceReport, error) {
	report, hit, err := s.paceCache.Get("pace", func() (PaceReport, error) {
		return s.buildPace(ctx)
	})
	countCache("pace", hit)
	return report, err
}

func (s *Service) buildPace(ctx context.Context) (PaceReport, error) {
	ctx, span := tracer.Start(ctx, "dashboard.buildPace")
	defer span.End()

	grid, err := s.fetchSheet(ctx, "pace_sheet", s.sheetsCfg.PaceSheetID, s.sheetsCfg.PaceRange)
	if err != nil {
		return PaceReport{}, err
	}

	rows := make([]pace.Row, 0, len(grid))
	for _, row := range sheets.Table(grid) {
		rows = append(rows, pace.Row(row))
	}

	today := s.now()
	comparison, err := pace.Compare(rows, today)
	if err != nil {
		var notFound *pace.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Info().Str("reason", notFound.Reason).Msg("pace comparison unavailable")
			return PaceReport{Status: StatusNoData, Reason: notFound.Reason}, nil
		}
		return PaceReport{}, err
	}

	return PaceReport{
		Status:     StatusOK,
		Comparison: comparison,
		Daily:      pace.DailyWindow(rows, today, MaxDailyWindow),
		Weekly:     pace.WeeklyYTD(rows, today),
	}, nil
}

// Funnel returns the funnel report for the current year.
func (s *Service) Funnel(ctx context.Context) (FunnelReport, error) {
	return s.FunnelForYear(ctx, s.now().Year())
}

// FunnelForYear returns the funnel report for an explicit target year.
func (s *Service) FunnelForYear(ctx context.Context, year int) (FunnelReport, error) {
	report, hit, err := s.funnelCache.Get("funnel:"+strconv.Itoa(year), func() (FunnelReport, error) {
		return s.buildFunnel(ctx, year)
	})
	countCache("funnel", hit)
	return report, err
}

func (s *Service) buildFunnel(ctx context.Context, year int) (FunnelReport, error) {
	ctx, span := tracer.Start(ctx, "dashboard.buildFunnel")
	defer span.End()

	grid, err := s.fetchSheet(ctx, "inquiry_sheet", s.sheetsCfg.InquirySheetID, s.sheetsCfg.InquiryRange)
	if err != nil {
		return FunnelReport{}, err
	}

	records := inquiries.FromTable(sheets.Table(grid))
	reconciled, stats := inquiries.Deduplicator{}.Reconcile(records)
	metrics.DedupRowsRemoved.Set(float64(stats.Removed()))
	if stats.Removed() > 0 {
		s.logger.Debug().Int("removed", stats.Removed()).Msg("collapsed duplicate inquiry rows")
	}

	calc := inquiries.FunnelCalculator{HouseVenues: s.roster.HouseVenues}
	m := calc.ComputeFunnel(reconciled, year)

	status := StatusOK
	if m.TotalInquiries == 0 && m.HouseBookings == 0 {
		status = StatusNoData
	}
	return FunnelReport{Status: status, Metrics: m, Dedup: stats}, nil
}

// Upcoming returns the upcoming-events strip.
func (s *Service) Upcoming(ctx context.Context) ([]UpcomingEvent, error) {
	events, hit, err := s.eventsCache.Get("upcoming", func() ([]UpcomingEvent, error) {
		return s.buildUpcoming(ctx)
	})
	countCache("upcoming", hit)
	return events, err
}

func (s *Service) buildUpcoming(ctx context.Context) ([]UpcomingEvent, error) {
	ctx, span := tracer.Start(ctx, "dashboard.buildUpcoming")
	defer span.End()

	start := time.Now()
	raw, err := s.eventSource.Upcoming(ctx, s.now(), s.lookahead)
	metrics.FetchDuration.WithLabelValues("gig_feed").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues("gig_feed").Inc()
		return nil, fmt.Errorf("fetch upcoming events: %w", err)
	}

	events := make([]UpcomingEvent, 0, len(raw))
	for _, ev := range raw {
		events = append(events, UpcomingEvent{
			Date:     ev.EventDate,
			Venue:    ev.VenueName,
			Client:   ev.ClientName,
			DJ:       ev.AssignedDJ,
			Initials: s.roster.Initials(ev.AssignedDJ),
		})
	}
	return events, nil
}

func (s *Service) fetchSheet(ctx context.Context, source, sheetID, readRange string) ([][]string, error) {
	start := time.Now()
	grid, err := s.sheetSource.Values(ctx, sheetID, readRange)
	metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	return grid, nil
}

func countCache(resource string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(resource).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(resource).Inc()
	}
}
