package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClock is returned for wall clock values not in HH:MM format.
var ErrInvalidClock = errors.New("time must be in HH:MM format")

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 24 * 60

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidClock, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func ClockToMinutes(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// MinutesToClock converts minutes since midnight to "HH:MM" format.
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// At returns the instant at clock "HH:MM" on day, in day's location.
func At(day time.Time, clock string) (time.Time, error) {
	m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(m) * time.Minute), nil
}

// Between builds a timeslot on day from two "HH:MM" clocks.
func Between(day time.Time, start, end string) (Timeslot, error) {
	s, err := At(day, start)
	if err != nil {
		return Timeslot{}, fmt.Errorf("start time: %w", err)
	}
	e, err := At(day, end)
	if err != nil {
		return Timeslot{}, fmt.Errorf("end time: %w", err)
	}
	return New(s, e)
}
