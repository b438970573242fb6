// Package dateutil provides date parsing and validation utilities for event days.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxEventDays bounds the length of an event.
const MaxEventDays = 31

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrRangeTooLong       = errors.New("event cannot span more than 31 days")
	ErrNotEventDay        = errors.New("date is not an event day")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	if end.Sub(start) >= MaxEventDays*24*time.Hour {
		return nil, ErrRangeTooLong
	}

	return &DateRange{Start: start, End: end}, nil
}

// Days returns every date of the range, start and end included.
func (r *DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		today := TruncateToDay(time.Now())
		return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ParseDay resolves a day reference against the event days and returns its index.
// Accepted inputs, case-insensitive:
//   - Empty string: the first event day
//   - Day number: "1" is the first event day
//   - Keywords: "today", "tomorrow", relative to now
//   - Weekday names: "monday" through "sunday" (first matching event day)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//
// Returns ErrNotEventDay when the reference resolves outside the event and
// ErrInvalidDateFormat for unrecognized input.
func ParseDay(s string, days []time.Time, now time.Time) (int, error) {
	if len(days) == 0 {
		return 0, ErrNotEventDay
	}
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "":
		return 0, nil
	case "today":
		return indexOf(days, now)
	case "tomorrow":
		return indexOf(days, now.AddDate(0, 0, 1))
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(days) {
			return 0, ErrNotEventDay
		}
		return n - 1, nil
	}

	if target, ok := weekdayMap[input]; ok {
		for i, d := range days {
			if d.Weekday() == target {
				return i, nil
			}
		}
		return 0, ErrNotEventDay
	}

	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}
	return indexOf(days, date)
}

func indexOf(days []time.Time, date time.Time) (int, error) {
	for i, d := range days {
		if SameDay(d, date) {
			return i, nil
		}
	}
	return 0, ErrNotEventDay
}

// FormatDuration formats minutes as "45m", "2h" or "1h05m".
func FormatDuration(minutes int) string {
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%02dm", hours, mins)
}
