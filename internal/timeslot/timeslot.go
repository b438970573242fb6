// Package timeslot implements the time range arithmetic used by the schedule engine.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// Interval is the minimal addressable granularity of the schedule grid.
const Interval = 5 * time.Minute

// ErrInvalidTimeslot is returned when a timeslot does not start before it ends.
var ErrInvalidTimeslot = errors.New("timeslot start must be before end")

// Timeslot is a half-open time range [Start, End).
type Timeslot struct {
	Start time.Time
	End   time.Time
}

// New creates a Timeslot with validation.
func New(start, end time.Time) (Timeslot, error) {
	if !start.Before(end) {
		return Timeslot{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeslot,
			start.Format("15:04"), end.Format("15:04"))
	}
	return Timeslot{Start: start, End: end}, nil
}

// Valid reports whether the timeslot starts before it ends.
func (t Timeslot) Valid() bool {
	return t.Start.Before(t.End)
}

// Duration returns End - Start.
func (t Timeslot) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Minutes returns the duration in whole minutes.
func (t Timeslot) Minutes() int {
	return int(t.Duration() / time.Minute)
}

// Equal reports whether both bounds are the same instants.
func (t Timeslot) Equal(other Timeslot) bool {
	return t.Start.Equal(other.Start) && t.End.Equal(other.End)
}

// In returns the timeslot with both bounds expressed in loc.
func (t Timeslot) In(loc *time.Location) Timeslot {
	return Timeslot{Start: t.Start.In(loc), End: t.End.In(loc)}
}

// String formats the timeslot as "HH:MM-HH:MM".
func (t Timeslot) String() string {
	return t.Start.Format("15:04") + "-" + t.End.Format("15:04")
}

// Overlaps reports whether a and b share any instant.
// Touching ranges (a.End == b.Start) do not overlap.
func Overlaps(a, b Timeslot) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Timeslot) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}

// Merge returns the smallest timeslot covering both a and b.
func Merge(a, b Timeslot) Timeslot {
	start, end := a.Start, a.End
	if b.Start.Before(start) {
		start = b.Start
	}
	if b.End.After(end) {
		end = b.End
	}
	return Timeslot{Start: start, End: end}
}

// MoveStart shifts slot so it starts at newStart, preserving its duration.
func MoveStart(slot Timeslot, newStart time.Time) Timeslot {
	return Timeslot{Start: newStart, End: newStart.Add(slot.Duration())}
}

// IntervalsCount returns how many granularity units are needed to cover slot.
func IntervalsCount(slot Timeslot, granularity time.Duration) int {
	if granularity <= 0 {
		return 0
	}
	d := slot.Duration()
	if d <= 0 {
		return 0
	}
	n := int(d / granularity)
	if d%granularity != 0 {
		n++
	}
	return n
}

// IsAfter reports whether a starts strictly after b.
func IsAfter(a, b Timeslot) bool {
	return a.Start.After(b.Start)
}

// SlotAt returns the index-th grid cell of Interval length after dayStart.
func SlotAt(dayStart time.Time, index int) Timeslot {
	start := dayStart.Add(time.Duration(index) * Interval)
	return Timeslot{Start: start, End: start.Add(Interval)}
}

// Align floors t to the Interval grid anchored at dayStart.
func Align(dayStart, t time.Time) time.Time {
	offset := t.Sub(dayStart)
	steps := offset / Interval
	if offset < 0 && offset%Interval != 0 {
		steps--
	}
	return dayStart.Add(steps * Interval)
}

// IsAligned reports whether both bounds sit on the Interval grid anchored at dayStart.
func IsAligned(dayStart time.Time, slot Timeslot) bool {
	return slot.Start.Sub(dayStart)%Interval == 0 && slot.End.Sub(dayStart)%Interval == 0
}
