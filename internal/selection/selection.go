// Package selection tracks a drag-to-create gesture over empty slots of one track.
package selection

import (
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

// State is the selection state of a Machine.
type State int

const (
	Idle State = iota
	Selecting
)

// String returns the state name.
func (s State) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// Selected is the result of a completed selection: the range to create a session on.
type Selected struct {
	TrackID  string
	Timeslot timeslot.Timeslot
}

// Machine is the Idle → Selecting → Idle state machine behind drag-to-create.
// The zero value is an idle machine ready for use.
type Machine struct {
	state    State
	trackID  string
	anchor   timeslot.Timeslot
	hover    timeslot.Timeslot
	hasHover bool
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// TrackID returns the track being selected on, or "" when idle.
func (m *Machine) TrackID() string {
	if m.state != Selecting {
		return ""
	}
	return m.trackID
}

// Reset discards any selection and returns to Idle.
func (m *Machine) Reset() {
	*m = Machine{}
}

// Start anchors a new selection at slot on trackID, discarding any previous one.
// It returns false and stays Idle when slot is already occupied.
func (m *Machine) Start(trackID string, slot timeslot.Timeslot, sessions []schedule.Session) bool {
	m.Reset()
	if !slot.Valid() || occupied(sessions, trackID, slot) {
		return false
	}
	m.state = Selecting
	m.trackID = trackID
	m.anchor = slot
	return true
}

// Hover extends the selection towards slot.
// Hovers on another track, or that would make the range overlap a session, are
// rejected and leave the previous hover in place.
func (m *Machine) Hover(trackID string, slot timeslot.Timeslot, sessions []schedule.Session) bool {
	if m.state != Selecting || trackID != m.trackID || !slot.Valid() {
		return false
	}
	if occupied(sessions, trackID, timeslot.Merge(m.anchor, slot)) {
		return false
	}
	m.hover = slot
	m.hasHover = true
	return true
}

// Range returns the displayed range of the current selection.
// Dragging works in both directions along the time axis.
func (m *Machine) Range() (timeslot.Timeslot, bool) {
	if m.state != Selecting {
		return timeslot.Timeslot{}, false
	}
	if !m.hasHover {
		return m.anchor, true
	}
	if m.hover.Start.Before(m.anchor.Start) {
		return timeslot.Timeslot{Start: m.hover.Start, End: m.anchor.End}, true
	}
	return timeslot.Timeslot{Start: m.anchor.Start, End: m.hover.End}, true
}

// Select completes the gesture, returning the merged range and resetting to Idle.
// It is a no-op returning false when no selection is in progress.
func (m *Machine) Select() (Selected, bool) {
	if m.state != Selecting {
		return Selected{}, false
	}
	hover := m.anchor
	if m.hasHover {
		hover = m.hover
	}
	result := Selected{TrackID: m.trackID, Timeslot: timeslot.Merge(m.anchor, hover)}
	m.Reset()
	return result, true
}

func occupied(sessions []schedule.Session, trackID string, slot timeslot.Timeslot) bool {
	_, ok := schedule.At(sessions, trackID, slot)
	return ok
}
