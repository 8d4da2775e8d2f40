package handlers

import (
	"errors"
	"time"
)

// DateRange bounds an analysis query, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

var (
	errInvalidPeriod      = errors.New("Invalid period specified")
	errCustomBoundsNeeded = errors.New("Custom period requires both startDate and endDate")
	errInvalidDate        = errors.New("Invalid startDate or endDate")
	errStartAfterEnd      = errors.New("Start date cannot be greater than end date")
)

// resolvePeriod turns a period name into a concrete date range relative to
// now. Boundaries use the server's timezone; weeks start on Sunday. The
// custom period takes caller-supplied bounds, widened to whole days, and
// is rejected before any query when a bound is missing or inverted.
func resolvePeriod(period, startDate, endDate string, now time.Time) (DateRange, error) {
	switch period {
	case "daily":
		return DateRange{Start: startOfDay(now), End: endOfDay(now)}, nil
	case "weekly":
		weekStart := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		return DateRange{Start: weekStart, End: endOfDay(weekStart.AddDate(0, 0, 6))}, nil
	case "monthly":
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: monthStart, End: endOfDay(monthStart.AddDate(0, 1, -1))}, nil
	case "yearly":
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: yearStart, End: endOfDay(yearStart.AddDate(1, 0, -1))}, nil
	case "custom":
		if startDate == "" || endDate == "" {
			return DateRange{}, errCustomBoundsNeeded
		}
		start, err := parseDate(startDate)
		if err != nil {
			return DateRange{}, errInvalidDate
		}
		end, err := parseDate(endDate)
		if err != nil {
			return DateRange{}, errInvalidDate
		}
		if start.After(end) {
			return DateRange{}, errStartAfterEnd
		}
		return DateRange{Start: startOfDay(start), End: endOfDay(end)}, nil
	default:
		return DateRange{}, errInvalidPeriod
	}
}

// parseDate accepts full RFC 3339 timestamps or bare ISO dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
