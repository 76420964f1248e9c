package inquiries

import (
	"sort"
	"strings"
	"time"

	"github.com/bigfun-dj/opsboard/internal/dates"
)

// DedupStats reports the row counts before and after reconciliation so the
// caller can surface "N duplicates removed". Diagnostic only; not part of
// the canonical record set.
type DedupStats struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// Removed returns how many rows reconciliation collapsed.
func (s DedupStats) Removed() int {
	return s.Before - s.After
}

// Deduplicator collapses raw inquiry rows that refer to the same physical
// event into a net booking count per (event date, venue) pair.
//
// Keys are matched on raw text equality by default: near-duplicate venue
// spellings form separate groups, which is a known limitation of the source
// data. NormalizeKeys opts in to lowercasing and whitespace-collapsing the
// key fields before grouping.
type Deduplicator struct {
	NormalizeKeys bool
}

type groupKey struct {
	eventDate string
	venue     string
}

// entry pairs a record with its resolved submission timestamp. Records with
// unparseable timestamps carry the zero time, which sorts them last
// (treated as oldest) while keeping them in the record set.
type entry struct {
	rec Record
	ts  time.Time
}

// Reconcile collapses duplicate/edited submissions into the canonical record
// set. Within each (event date, venue) group the net booking count is
// max(0, booked − validCancellations), where a valid cancellation is a
// Canceled row whose timestamp is strictly after the earliest Booked row's
// timestamp. Groups that net to zero degenerate to a single representative
// row: the most recent Canceled row, or the most recent row of any kind.
func (d Deduplicator) Reconcile(rows []Record) ([]Record, DedupStats) {
	stats := DedupStats{Before: len(rows)}

	entries := make([]entry, 0, len(rows))
	for _, rec := range rows {
		ts, ok := dates.ResolveTimestamp(rec.Timestamp)
		if !ok {
			ts = time.Time{}
		}
		entries = append(entries, entry{rec: rec, ts: ts})
	}

	// Most recent first; the zero time lands unparseable rows at the end.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ts.After(entries[j].ts)
	})

	groups := make(map[groupKey][]entry)
	var order []groupKey
	for _, e := range entries {
		key := d.key(e.rec)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	var kept []Record
	for _, key := range order {
		for _, e := range reconcileGroup(groups[key]) {
			kept = append(kept, e.rec)
		}
	}

	stats.After = len(kept)
	return kept, stats
}

func (d Deduplicator) key(rec Record) groupKey {
	if !d.NormalizeKeys {
		return groupKey{eventDate: rec.EventDate, venue: rec.Venue}
	}
	return groupKey{
		eventDate: strings.ToLower(dates.Normalize(rec.EventDate)),
		venue:     strings.ToLower(dates.Normalize(rec.Venue)),
	}
}

// reconcileGroup applies the net-booking rule to one group, which is sorted
// most recent first.
func reconcileGroup(group []entry) []entry {
	if len(group) == 1 {
		return group
	}

	var booked, canceled []entry
	for _, e := range group {
		switch CanonicalResolution(e.rec.Resolution) {
		case ResolutionBooked:
			booked = append(booked, e)
		case ResolutionCanceled:
			canceled = append(canceled, e)
		}
	}

	// No booking in the group: the newest edit wins, whatever its outcome.
	if len(booked) == 0 {
		return group[:1]
	}

	earliest := booked[len(booked)-1].ts
	validCancellations := 0
	for _, e := range canceled {
		if e.ts.After(earliest) {
			validCancellations++
		}
	}

	net := len(booked) - validCancellations
	if net <= 0 {
		if len(canceled) > 0 {
			return canceled[:1]
		}
		return group[:1]
	}
	return booked[:net]
}
