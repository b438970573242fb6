package dnd

import (
	"math"
	"slices"

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

// Point is a position in grid coordinates (columns, rows or pixels).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// TopCenter returns the middle of the rectangle's top edge.
func (r Rect) TopCenter() Point {
	return Point{X: r.X + r.W/2, Y: r.Y}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Droppable is a drop target together with its on-screen bounds.
type Droppable struct {
	Target Target
	Rect   Rect
}

// Collision is a ranked drop candidate.
type Collision struct {
	Droppable
	Priority float64
}

// Detector decides which targets a drag may drop onto and which one is preferred.
type Detector interface {
	// Accepts reports whether src may be dropped onto tgt.
	Accepts(src Source, tgt Target, sessions []schedule.Session) bool

	// Rank orders candidates for a dragged shape, best first.
	Rank(shape Rect, candidates []Droppable) []Collision
}

// TopCenter prefers the candidate closest to the top-center of the dragged shape.
// A candidate containing that point wins outright with priority 1.
type TopCenter struct{}

var _ Detector = TopCenter{}

// Accepts implements Detector.
//
// Timeslot targets under a move are rejected when a different session occupies them;
// the dragged session's own cells stay valid. Session targets only accept a move onto
// another session.
func (TopCenter) Accepts(src Source, tgt Target, sessions []schedule.Session) bool {
	switch tgt.Kind {
	case TargetTimeslot:
		if !tgt.Timeslot.Valid() {
			return false
		}
		if src.Action != ActionMove {
			return true
		}
		for _, s := range schedule.OnTrack(sessions, tgt.TrackID) {
			if s.ID != src.Session.ID && timeslot.Overlaps(s.Timeslot, tgt.Timeslot) {
				return false
			}
		}
		return true
	case TargetSession:
		return src.Action == ActionMove && tgt.Session.ID != src.Session.ID
	default:
		return false
	}
}

// Rank implements Detector.
func (TopCenter) Rank(shape Rect, candidates []Droppable) []Collision {
	top := shape.TopCenter()
	collisions := make([]Collision, 0, len(candidates))
	for _, c := range candidates {
		priority := 1.0
		if !c.Rect.Contains(top) {
			priority = 1 / (1 + distance(top, c.Rect.TopCenter()))
		}
		collisions = append(collisions, Collision{Droppable: c, Priority: priority})
	}
	slices.SortStableFunc(collisions, func(a, b Collision) int {
		switch {
		case a.Priority > b.Priority:
			return -1
		case a.Priority < b.Priority:
			return 1
		default:
			return 0
		}
	})
	return collisions
}
