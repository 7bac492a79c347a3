package store

import (
	"fmt"
	"time"
)

// Named timeframes accepted by ListByTimeframe.
const (
	TimeframeToday = "today"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

// TimeframeBounds computes the [start, end] window for a named timeframe
// relative to now: start of the current local day, or 7/30/365 days back.
func TimeframeBounds(timeframe string, now time.Time) (time.Time, time.Time, error) {
	var start time.Time
	switch timeframe {
	case TimeframeToday:
		start = StartOfDay(now)
	case TimeframeWeek:
		start = now.AddDate(0, 0, -7)
	case TimeframeMonth:
		start = now.AddDate(0, 0, -30)
	case TimeframeYear:
		start = now.AddDate(0, 0, -365)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeframe, timeframe)
	}
	return start, now, nil
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
