package schedule

import (
	"fmt"

	"github.com/conference-hall/hall/internal/timeslot"
)

// OverlapError reports which existing session a proposed placement collides with.
type OverlapError struct {
	Session Session
	With    Session
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %q (%s)", ErrSessionOverlap, e.With.Title(), e.With.Timeslot)
}

// Unwrap lets errors.Is match ErrSessionOverlap.
func (e *OverlapError) Unwrap() error {
	return ErrSessionOverlap
}

// nextOnTrack returns the session on trackID that starts soonest strictly after ref,
// ignoring excludeID.
func nextOnTrack(sessions []Session, trackID, excludeID string, ref timeslot.Timeslot) (Session, bool) {
	var (
		next  Session
		found bool
	)
	for _, s := range sessions {
		if s.TrackID != trackID || s.ID == excludeID {
			continue
		}
		if !timeslot.IsAfter(s.Timeslot, ref) {
			continue
		}
		if !found || s.Timeslot.Start.Before(next.Timeslot.Start) {
			next = s
			found = true
		}
	}
	return next, found
}

// ResizeToTimeslot moves the end of s towards proposed.End, keeping its start fixed.
//
// The end is clamped to the start of the next session on the same track and is
// never earlier than one slot interval after the start.
func ResizeToTimeslot(s Session, proposed timeslot.Timeslot, sessions []Session) Session {
	start := s.Timeslot.Start
	end := proposed.End

	if next, ok := nextOnTrack(sessions, s.TrackID, s.ID, s.Timeslot); ok && end.After(next.Timeslot.Start) {
		end = next.Timeslot.Start
	}
	if !end.After(start) {
		end = start.Add(timeslot.Interval)
	}

	result := s.Clone()
	result.Timeslot = timeslot.Timeslot{Start: start, End: end}
	return result
}

// MoveToTimeslot places s on trackID starting at proposed.Start, preserving its duration.
//
// When the moved session would run into the next session on the target track its end
// is clamped to that session's start, which shortens it. A proposed start that falls
// inside another session leaves s unchanged.
func MoveToTimeslot(s Session, trackID string, proposed timeslot.Timeslot, sessions []Session) Session {
	start := proposed.Start
	candidate := timeslot.MoveStart(s.Timeslot, start)

	for _, other := range sessions {
		if other.TrackID != trackID || other.ID == s.ID {
			continue
		}
		if !start.Before(other.Timeslot.Start) && start.Before(other.Timeslot.End) {
			return s
		}
	}

	end := candidate.End
	if next, ok := nextOnTrack(sessions, trackID, s.ID, candidate); ok && end.After(next.Timeslot.Start) {
		end = next.Timeslot.Start
	}

	result := s.Clone()
	result.TrackID = trackID
	result.Timeslot = timeslot.Timeslot{Start: start, End: end}
	return result
}

// SwitchSessions exchanges the track and timeslot of a and b.
// Applying it twice restores the original assignment.
func SwitchSessions(a, b Session) (Session, Session) {
	na, nb := a.Clone(), b.Clone()
	na.TrackID, na.Timeslot = b.TrackID, b.Timeslot
	nb.TrackID, nb.Timeslot = a.TrackID, a.Timeslot
	return na, nb
}

// CheckAvailable validates a caller-chosen placement for s without correcting it.
// It returns an *OverlapError when s would overlap another session on its track.
func CheckAvailable(s Session, sessions []Session) error {
	if s.TrackID == "" {
		return ErrMissingTrack
	}
	if !s.Timeslot.Valid() {
		return fmt.Errorf("%w: %s", timeslot.ErrInvalidTimeslot, s.Timeslot)
	}
	for _, other := range sessions {
		if s.OverlapsWith(other) {
			return &OverlapError{Session: s, With: other}
		}
	}
	return nil
}
