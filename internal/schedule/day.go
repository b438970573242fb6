package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/conference-hall/hall/internal/timeslot"
)

// ErrInvalidDayWindow is returned when a day's display window is empty or misaligned.
var ErrInvalidDayWindow = errors.New("day window must start before it ends on the slot grid")

// Day is one event day with its display window in the display timezone.
type Day struct {
	Date   time.Time         // Midnight of the day in the display timezone
	Window timeslot.Timeslot // Displayed range, e.g. 09:00-18:00
}

// NewDay builds the display window for date between the "HH:MM" clocks start and end.
// date is interpreted in loc.
func NewDay(date time.Time, loc *time.Location, start, end string) (Day, error) {
	if loc == nil {
		loc = time.UTC
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	window, err := timeslot.Between(midnight, start, end)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %v", ErrInvalidDayWindow, err)
	}
	if !timeslot.IsAligned(midnight, window) {
		return Day{}, fmt.Errorf("%w: %s", ErrInvalidDayWindow, window)
	}
	return Day{Date: midnight, Window: window}, nil
}

// NewDays builds one Day per date sharing the same display window.
func NewDays(dates []time.Time, loc *time.Location, start, end string) ([]Day, error) {
	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		d, err := NewDay(date, loc, start, end)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// Slots returns the number of slot intervals in the window.
func (d Day) Slots() int {
	return timeslot.IntervalsCount(d.Window, timeslot.Interval)
}

// Slot returns the i-th slot interval of the window.
func (d Day) Slot(i int) timeslot.Timeslot {
	return timeslot.SlotAt(d.Window.Start, i)
}

// SlotIndex returns the index of the slot containing t, clamped to the window.
func (d Day) SlotIndex(t time.Time) int {
	i := int(timeslot.Align(d.Window.Start, t).Sub(d.Window.Start) / timeslot.Interval)
	return max(0, min(i, d.Slots()-1))
}

// Range returns the span [index, index+count) of slots as one timeslot.
func (d Day) Range(index, count int) timeslot.Timeslot {
	first := d.Slot(index)
	return timeslot.Timeslot{Start: first.Start, End: first.Start.Add(time.Duration(count) * timeslot.Interval)}
}

// Bounds returns the whole calendar day, used to query sessions for the day.
func (d Day) Bounds() (from, to time.Time) {
	return d.Date, d.Date.AddDate(0, 0, 1)
}

// Label formats the day for headers.
func (d Day) Label() string {
	return d.Date.Format("Monday, January 2")
}
