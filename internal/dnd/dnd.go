// Package dnd classifies drag gestures over the schedule grid and turns drops
// into session mutations.
package dnd

import (
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

// Action is what a drag does to its session.
type Action int

const (
	ActionMove Action = iota
	ActionResize
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionResize:
		return "resize"
	default:
		return "unknown"
	}
}

// TargetKind distinguishes empty grid cells from session blocks.
type TargetKind int

const (
	TargetTimeslot TargetKind = iota
	TargetSession
)

// Source describes the session being dragged.
type Source struct {
	Action  Action
	Session schedule.Session
}

// Target describes what a drag is over.
// TrackID and Timeslot are set for timeslot targets, Session for session targets.
type Target struct {
	Kind     TargetKind
	TrackID  string
	Timeslot timeslot.Timeslot
	Session  schedule.Session
}

// TimeslotTarget returns a target for the grid cell slot on trackID.
func TimeslotTarget(trackID string, slot timeslot.Timeslot) Target {
	return Target{Kind: TargetTimeslot, TrackID: trackID, Timeslot: slot}
}

// SessionTarget returns a target for the block of s.
func SessionTarget(s schedule.Session) Target {
	return Target{Kind: TargetSession, TrackID: s.TrackID, Timeslot: s.Timeslot, Session: s}
}

// Drop resolves dropping src onto tgt against the current sessions.
//
//	resize → timeslot: resize with the target cell end as proposed end (same track only)
//	move   → timeslot: move to the target track and cell start
//	move   → session:  swap both placements
//	resize → session:  ignored
//
// Drops that would leave every session in place return no mutations.
func Drop(src Source, tgt Target, sessions []schedule.Session) []schedule.Mutation {
	updated, swapped, ok := resolve(src, tgt, sessions)
	if !ok {
		return nil
	}
	var mutations []schedule.Mutation
	if changed(src.Session, updated) {
		mutations = append(mutations, schedule.UpdateSession(updated))
	}
	if swapped != nil && changed(tgt.Session, *swapped) {
		mutations = append(mutations, schedule.UpdateSession(*swapped))
	}
	return mutations
}

// resolve returns the new placement of the dragged session and, for swaps, of the
// target session.
func resolve(src Source, tgt Target, sessions []schedule.Session) (schedule.Session, *schedule.Session, bool) {
	switch {
	case src.Action == ActionResize && tgt.Kind == TargetTimeslot:
		if tgt.TrackID != src.Session.TrackID {
			return schedule.Session{}, nil, false
		}
		return schedule.ResizeToTimeslot(src.Session, tgt.Timeslot, sessions), nil, true
	case src.Action == ActionMove && tgt.Kind == TargetTimeslot:
		return schedule.MoveToTimeslot(src.Session, tgt.TrackID, tgt.Timeslot, sessions), nil, true
	case src.Action == ActionMove && tgt.Kind == TargetSession:
		if tgt.Session.ID == src.Session.ID {
			return schedule.Session{}, nil, false
		}
		a, b := schedule.SwitchSessions(src.Session, tgt.Session)
		return a, &b, true
	default:
		return schedule.Session{}, nil, false
	}
}

func changed(before, after schedule.Session) bool {
	return before.TrackID != after.TrackID || !before.Timeslot.Equal(after.Timeslot)
}
