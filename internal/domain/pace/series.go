package pace

import (
	"sort"
	"strconv"
	"time"

	"github.com/bigfun-dj/opsboard/internal/dates"
)

// DailyWindow extracts an ordered-by-date series of the rows whose day falls
// within windowDays of today, inclusive on both ends. Rows with unparseable
// day labels are skipped.
func DailyWindow(rows []Row, today time.Time, windowDays int) []Point {
	points := resolvedPoints(rows, today)
	start := today.AddDate(0, 0, -windowDays)

	var out []Point
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(today) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// WeeklyYTD extracts a year-to-date series subsampled to one point per week
// (Mondays), always keeping the first available day of January and the most
// recent day so the chart endpoints survive the subsampling.
func WeeklyYTD(rows []Row, today time.Time) []Point {
	points := resolvedPoints(rows, today)

	var ytd []Point
	for _, p := range points {
		if p.Date.Year() == today.Year() && !p.Date.After(today) {
			ytd = append(ytd, p)
		}
	}
	if len(ytd) == 0 {
		return nil
	}

	var out []Point
	for i, p := range ytd {
		first := i == 0
		last := i == len(ytd)-1
		if first || last || p.Date.Weekday() == time.Monday {
			out = append(out, p)
		}
	}
	return out
}

// resolvedPoints parses every row's day label against today's year and
// returns the parseable ones sorted by date.
func resolvedPoints(rows []Row, today time.Time) []Point {
	currentCol := strconv.Itoa(today.Year())
	priorCol := strconv.Itoa(today.Year() - 1)

	var points []Point
	for _, row := range rows {
		date, ok := dates.ResolveDayLabel(row.Day(), today.Year())
		if !ok {
			continue
		}
		points = append(points, Point{
			Day:     row.Day(),
			Date:    date,
			Current: coerceCount(row[currentCol]),
			Prior:   coerceCount(row[priorCol]),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
