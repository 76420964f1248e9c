// Package pace computes year-over-year booking pace from the day-indexed
// comparison table. Rows carry a short day label ("Feb 3") plus one
// cumulative count column per calendar year; cells are raw text and may be
// empty or non-numeric.
package pace

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bigfun-dj/opsboard/internal/dates"
)

// dayColumn is the label column of the comparison sheet.
const dayColumn = "Day"

// Row is one row of the comparison table: the day label plus every other
// column keyed by header text. Year columns may have been stored as text or
// numbers upstream, so lookups always compare by string value.
type Row map[string]string

// Day returns the row's day label.
func (r Row) Day() string {
	return dates.Normalize(r[dayColumn])
}

// Comparison is the pace readout for the most recent populated day.
type Comparison struct {
	Day     string `json:"day"`
	Current int    `json:"current"`
	Prior   int    `json:"prior"`
	Delta   int    `json:"delta"`
}

// Point is one chart sample: a day label with the current- and prior-year
// cumulative counts.
type Point struct {
	Day     string    `json:"day"`
	Date    time.Time `json:"date"`
	Current int       `json:"current"`
	Prior   int       `json:"prior"`
}

// NotFoundError reports that no comparison row qualified. It carries a
// human-readable diagnostic with a sample of what was available so the
// caller can render a soft informational state.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}

// Compare locates the most recent populated day not in the future and
// reports the current count, the prior-year count at the same calendar
// position, and their difference.
//
// Rows whose current-year cell is empty or zero are skipped, which tolerates
// today's cell not having been filled in yet. Non-numeric prior-year cells
// coerce to 0.
func Compare(rows []Row, today time.Time) (Comparison, error) {
	if len(rows) == 0 {
		return Comparison{}, &NotFoundError{Reason: "pace table is empty"}
	}

	currentCol := strconv.Itoa(today.Year())
	priorCol := strconv.Itoa(today.Year() - 1)
	if !hasColumn(rows, currentCol) {
		return Comparison{}, &NotFoundError{
			Reason: fmt.Sprintf("column %q not found; available: %s", currentCol, sampleColumns(rows)),
		}
	}

	var (
		best     Row
		bestDate time.Time
		found    bool
	)
	for _, row := range rows {
		if coerceCount(row[currentCol]) == 0 {
			continue
		}
		date, ok := dates.ResolveDayLabel(row.Day(), today.Year())
		if !ok || date.After(today) {
			continue
		}
		if !found || date.After(bestDate) {
			best, bestDate, found = row, date, true
		}
	}

	if !found {
		return Comparison{}, &NotFoundError{
			Reason: fmt.Sprintf("no populated day on or before %s; sample days: %s",
				today.Format("Jan 2"), sampleDays(rows)),
		}
	}

	current := coerceCount(best[currentCol])
	prior := coerceCount(best[priorCol])
	return Comparison{
		Day:     best.Day(),
		Current: current,
		Prior:   prior,
		Delta:   current - prior,
	}, nil
}

func hasColumn(rows []Row, name string) bool {
	for _, row := range rows {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// coerceCount parses a cumulative-count cell, coercing empty or non-numeric
// values to 0.
func coerceCount(cell string) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0
	}
	return n
}

func sampleColumns(rows []Row) string {
	var names []string
	for name := range rows[0] {
		names = append(names, name)
		if len(names) >= 10 {
			break
		}
	}
	return strings.Join(names, ", ")
}

func sampleDays(rows []Row) string {
	var days []string
	for _, row := range rows {
		if day := row.Day(); day != "" {
			days = append(days, day)
		}
		if len(days) >= 5 {
			break
		}
	}
	return strings.Join(days, ", ")
}
