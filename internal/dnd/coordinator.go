package dnd

import (
	"errors"

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/zoom"
)

// Coordinator errors.
var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("already dragging a session")
)

// Callbacks let the host react to drag progress, e.g. to highlight targets.
// Any of them may be nil.
type Callbacks struct {
	OnStart func(src Source)
	OnOver  func(src Source, tgt Target, accepted bool)
	OnEnd   func(src Source, mutations []schedule.Mutation)
}

// Preview is the live rendering of the dragged session over its current target.
type Preview struct {
	Session  schedule.Session
	Height   int
	Accepted bool
}

// Coordinator owns the single active drag of a board.
type Coordinator struct {
	detector  Detector
	callbacks Callbacks

	dragging bool
	source   Source
	target   *Target
	preview  Preview
}

// NewCoordinator creates a coordinator using detector, or TopCenter when nil.
func NewCoordinator(detector Detector, callbacks Callbacks) *Coordinator {
	if detector == nil {
		detector = TopCenter{}
	}
	return &Coordinator{detector: detector, callbacks: callbacks}
}

// Dragging returns true while a drag is in progress.
func (c *Coordinator) Dragging() bool {
	return c.dragging
}

// Source returns the active drag source.
func (c *Coordinator) Source() (Source, bool) {
	return c.source, c.dragging
}

// Target returns the accepted target the drag is currently over.
func (c *Coordinator) Target() (Target, bool) {
	if !c.dragging || c.target == nil {
		return Target{}, false
	}
	return *c.target, true
}

// Preview returns the live preview of the dragged session.
func (c *Coordinator) Preview() (Preview, bool) {
	return c.preview, c.dragging
}

// Start begins dragging src. The preview starts at the session's own placement.
func (c *Coordinator) Start(src Source, z zoom.Zoom) error {
	if c.dragging {
		return ErrAlreadyDragging
	}
	c.dragging = true
	c.source = src
	c.target = nil
	c.preview = Preview{Session: src.Session, Height: z.BlockHeight(src.Session.Timeslot)}
	if c.callbacks.OnStart != nil {
		c.callbacks.OnStart(src)
	}
	return nil
}

// Over moves the drag over tgt and recomputes the preview.
// A rejected target clears the current target, so dropping there does nothing.
func (c *Coordinator) Over(tgt Target, sessions []schedule.Session, z zoom.Zoom) (Preview, error) {
	if !c.dragging {
		return Preview{}, ErrNotDragging
	}

	accepted := c.detector.Accepts(c.source, tgt, sessions)
	preview := Preview{Session: c.source.Session}
	if accepted {
		t := tgt
		c.target = &t
		if updated, _, ok := resolve(c.source, tgt, sessions); ok {
			preview.Session = updated
		}
	} else {
		c.target = nil
	}
	preview.Accepted = accepted
	preview.Height = z.BlockHeight(preview.Session.Timeslot)
	c.preview = preview

	if c.callbacks.OnOver != nil {
		c.callbacks.OnOver(c.source, tgt, accepted)
	}
	return preview, nil
}

// OverBest ranks candidates for the dragged shape and moves the drag over the best
// one the detector accepts. It returns false when no candidate is accepted.
func (c *Coordinator) OverBest(shape Rect, candidates []Droppable, sessions []schedule.Session, z zoom.Zoom) (Preview, bool, error) {
	if !c.dragging {
		return Preview{}, false, ErrNotDragging
	}
	for _, col := range c.detector.Rank(shape, candidates) {
		if !c.detector.Accepts(c.source, col.Target, sessions) {
			continue
		}
		p, err := c.Over(col.Target, sessions, z)
		return p, true, err
	}
	if len(candidates) > 0 {
		p, err := c.Over(candidates[0].Target, sessions, z)
		return p, false, err
	}
	return c.preview, false, nil
}

// End drops the session on the current target and returns the resulting mutations.
// Ending over no accepted target returns no mutations.
func (c *Coordinator) End(sessions []schedule.Session) ([]schedule.Mutation, error) {
	if !c.dragging {
		return nil, ErrNotDragging
	}
	src := c.source
	var mutations []schedule.Mutation
	if c.target != nil {
		mutations = Drop(src, *c.target, sessions)
	}
	c.reset()
	if c.callbacks.OnEnd != nil {
		c.callbacks.OnEnd(src, mutations)
	}
	return mutations, nil
}

// Cancel abandons the drag without emitting anything.
func (c *Coordinator) Cancel() {
	if !c.dragging {
		return
	}
	src := c.source
	c.reset()
	if c.callbacks.OnEnd != nil {
		c.callbacks.OnEnd(src, nil)
	}
}

func (c *Coordinator) reset() {
	c.dragging = false
	c.source = Source{}
	c.target = nil
	c.preview = Preview{}
}
