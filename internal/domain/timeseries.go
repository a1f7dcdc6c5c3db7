package domain

import (
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// TimeSeriesRecord is one grid-data observation: a value valid over a
// "<start>/<ISO-duration>" interval. Records arrive verbatim from the feed
// and are never mutated.
type TimeSeriesRecord struct {
	ValidTime string `json:"validTime"`
	Value     Scalar `json:"value"`
}

// GridSeries is the per-parameter list of interval records plus the unit the
// values are expressed in.
type GridSeries struct {
	UnitCode string             `json:"uom"`
	Values   []TimeSeriesRecord `json:"values"`
}

const dateLayout = "2006-01-02"

// parseStamp parses an RFC 3339 timestamp, preserving its UTC offset so
// calendar-day comparisons happen in the instant's own local date. Returns
// the zero time on failure.
func parseStamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// splitValidInterval parses a "<start>/<ISO-duration>" validity string into
// its start instant and duration. ok is false when the string is not a
// two-part interval, the start is unparseable, or the duration is malformed
// or non-positive.
func splitValidInterval(validTime string) (start time.Time, dur time.Duration, ok bool) {
	parts := strings.SplitN(validTime, "/", 2)
	if len(parts) != 2 || parts[1] == "" || (parts[1][0] != 'P' && parts[1][0] != 'p') {
		return time.Time{}, 0, false
	}
	start = parseStamp(parts[0])
	if start.IsZero() {
		return time.Time{}, 0, false
	}
	d, err := duration.Parse(strings.ToUpper(parts[1]))
	if err != nil {
		return time.Time{}, 0, false
	}
	dur = d.ToTimeDuration()
	if dur <= 0 {
		return time.Time{}, 0, false
	}
	return start, dur, true
}

// FindValueForTimestamp returns the value of the first record whose validity
// window contains target. Windows are half-open: a target equal to the start
// is inside, equal to the end is outside. Records with malformed or
// non-positive durations are skipped. An absent Scalar means no window
// matched or the target was unusable.
//
// When windows overlap the first record in list order wins; overlapping
// windows are not expected from the feed, so this is iteration order rather
// than a designed tie-break.
func FindValueForTimestamp(target time.Time, records []TimeSeriesRecord) Scalar {
	if target.IsZero() || records == nil {
		return None()
	}
	for _, rec := range records {
		start, dur, ok := splitValidInterval(rec.ValidTime)
		if !ok {
			continue
		}
		if !target.Before(start) && target.Before(start.Add(dur)) {
			return rec.Value
		}
	}
	return None()
}

// FindValueForTimestampMatchingDay returns the value of the first record
// whose start instant falls on the same calendar date as target, each
// formatted in its own UTC offset. The record still needs the two-part
// interval shape, but the duration itself is not consulted.
func FindValueForTimestampMatchingDay(target time.Time, records []TimeSeriesRecord) Scalar {
	if target.IsZero() || records == nil {
		return None()
	}
	targetDate := target.Format(dateLayout)
	for _, rec := range records {
		parts := strings.SplitN(rec.ValidTime, "/", 2)
		if len(parts) != 2 || parts[1] == "" || (parts[1][0] != 'P' && parts[1][0] != 'p') {
			continue
		}
		start := parseStamp(parts[0])
		if start.IsZero() {
			continue
		}
		if start.Format(dateLayout) == targetDate {
			return rec.Value
		}
	}
	return None()
}

// AccumulateValueForTimestamp sums the numeric values of every record whose
// start instant falls on the target's calendar day. Non-numeric values are
// skipped. The result distinguishes "no matching records" (absent) from
// "matched records summing to zero" (Number(0)).
func AccumulateValueForTimestamp(target time.Time, records []TimeSeriesRecord) Scalar {
	if target.IsZero() || records == nil {
		return None()
	}
	targetDayStart := startOfDay(target)
	sum := 0.0
	found := false
	for _, rec := range records {
		parts := strings.SplitN(rec.ValidTime, "/", 2)
		start := parseStamp(parts[0])
		if start.IsZero() {
			continue
		}
		if !sameDay(start, targetDayStart) {
			continue
		}
		if f, ok := rec.Value.Float(); ok {
			sum += f
			found = true
		}
	}
	if !found {
		return None()
	}
	return Number(sum)
}

// startOfDay returns midnight of t's calendar day in t's own offset.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay reports whether the instant b falls within a's calendar day, as
// observed in a's own UTC offset.
func sameDay(a, b time.Time) bool {
	start := startOfDay(a)
	return !b.Before(start) && b.Before(start.Add(24*time.Hour))
}
