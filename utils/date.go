package utils

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("dates must be YYYY-MM-DD and from must not be after to")

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDateRange parses inclusive YYYY-MM-DD bounds. Empty bounds default to the
// last defaultDays days ending today.
func ParseDateRange(from, to string, now time.Time, defaultDays int) (time.Time, time.Time, error) {
	end := EndOfDay(now)
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		end = EndOfDay(t)
	}
	start := StartOfDay(end).AddDate(0, 0, -(defaultDays - 1))
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		start = t
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return start, end, nil
}

// PeriodKey labels t for grouping by hour, day, week, month or year.
func PeriodKey(t time.Time, groupBy string) string {
	switch groupBy {
	case "hour":
		return t.Format("2006-01-02 15:00")
	case "week":
		y, w := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case "month":
		return t.Format("2006-01")
	case "year":
		return t.Format("2006")
	default:
		return t.Format(DateLayout)
	}
}
