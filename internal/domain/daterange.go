package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateRange is a half-open [Start, End) window used to filter channel
// listings by upload date.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the YYYYMMDD upload date falls in the range.
func (r DateRange) Contains(uploadDate string) bool {
	t, err := time.Parse("20060102", uploadDate)
	if err != nil {
		return false
	}
	return !t.Before(r.Start) && t.Before(r.End)
}

// ParseDateRange understands the channel digest's range grammar:
//
//	today              the current day
//	yesterday          the previous day
//	7                  the last N days up to today
//	20250810           a single day
//	20250810-20250812  an inclusive span
func ParseDateRange(expr string, now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expr = strings.TrimSpace(expr)

	switch strings.ToLower(expr) {
	case "today":
		return DateRange{Start: today, End: today.AddDate(0, 0, 1)}, nil
	case "yesterday":
		return DateRange{Start: today.AddDate(0, 0, -1), End: today}, nil
	}

	// An 8-digit expression is a YYYYMMDD day, never a day count.
	if len(expr) == 8 {
		day, err := time.Parse("20060102", expr)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid date range %q: %w", expr, err)
		}
		return DateRange{Start: day, End: day.AddDate(0, 0, 1)}, nil
	}

	if days, err := strconv.Atoi(expr); err == nil {
		if days < 0 {
			return DateRange{}, fmt.Errorf("invalid date range %q", expr)
		}
		return DateRange{Start: today.AddDate(0, 0, -days), End: today.AddDate(0, 0, 1)}, nil
	}

	if start, end, ok := strings.Cut(expr, "-"); ok {
		startDay, err := time.Parse("20060102", start)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid date range %q: %w", expr, err)
		}
		endDay, err := time.Parse("20060102", end)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid date range %q: %w", expr, err)
		}
		return DateRange{Start: startDay, End: endDay.AddDate(0, 0, 1)}, nil
	}

	day, err := time.Parse("20060102", expr)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid date range %q: %w", expr, err)
	}
	return DateRange{Start: day, End: day.AddDate(0, 0, 1)}, nil
}
