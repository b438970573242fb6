// Package schedule defines the core domain types of the event-day schedule builder.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/conference-hall/hall/internal/timeslot"
)

// Validation errors.
var (
	ErrEmptyTrackName = errors.New("track name cannot be empty")
	ErrInvalidColor   = errors.New("unknown session color")
	ErrMissingTrack   = errors.New("session must belong to a track")
)

// Domain errors.
var (
	ErrSessionOverlap  = errors.New("this session overlaps with an existing session")
	ErrSessionNotFound = errors.New("session not found")
	ErrTrackNotFound   = errors.New("track not found")
	ErrAmbiguousID     = errors.New("id prefix matches more than one item")
)

// Color is the display color of a session block.
type Color string

const (
	ColorGray   Color = "gray"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
)

// DefaultColor is assigned to sessions created without an explicit color.
const DefaultColor = ColorGray

// Colors lists the available session colors in display order.
func Colors() []Color {
	return []Color{ColorGray, ColorBlue, ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorPink, ColorPurple}
}

// Valid returns true if the color is one of Colors.
func (c Color) Valid() bool {
	return slices.Contains(Colors(), c)
}

// ParseColor parses a color name, defaulting to DefaultColor when empty.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultColor, nil
	}
	c := Color(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// Track is a named lane (typically a room) sessions are placed into.
type Track struct {
	ID       string
	Name     string
	Position int
}

// ProposalRef links a session to an accepted talk proposal.
// It is attached by the persistence side and never edited by the engine.
type ProposalRef struct {
	ID       string
	Title    string
	Speakers []string
}

// Session is a time-boxed item placed on exactly one track.
type Session struct {
	ID       string
	TrackID  string
	Timeslot timeslot.Timeslot
	Name     string
	Language string
	Color    Color
	Emojis   []string
	Proposal *ProposalRef
}

// Title returns the text displayed for the session.
func (s Session) Title() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Proposal != nil && s.Proposal.Title != "":
		return s.Proposal.Title
	default:
		return "(No title)"
	}
}

// Clone returns a copy of the session that shares no slices with s.
func (s Session) Clone() Session {
	c := s
	if s.Emojis != nil {
		c.Emojis = slices.Clone(s.Emojis)
	}
	if s.Proposal != nil {
		p := *s.Proposal
		p.Speakers = slices.Clone(s.Proposal.Speakers)
		c.Proposal = &p
	}
	return c
}

// OverlapsWith returns true if both sessions are on the same track and their timeslots overlap.
func (s Session) OverlapsWith(other Session) bool {
	if s.ID == other.ID || s.TrackID != other.TrackID {
		return false
	}
	return timeslot.Overlaps(s.Timeslot, other.Timeslot)
}

// OnTrack returns the sessions of trackID, sorted by start.
func OnTrack(sessions []Session, trackID string) []Session {
	var result []Session
	for _, s := range sessions {
		if s.TrackID == trackID {
			result = append(result, s)
		}
	}
	SortByStart(result)
	return result
}

// SortByStart sorts sessions by start instant, then track, then id.
func SortByStart(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.Timeslot.Start.Equal(b.Timeslot.Start) {
			return a.Timeslot.Start.Before(b.Timeslot.Start)
		}
		if a.TrackID != b.TrackID {
			return a.TrackID < b.TrackID
		}
		return a.ID < b.ID
	})
}

// FindByID returns the session with the given id.
func FindByID(sessions []Session, id string) (Session, bool) {
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// At returns the session on trackID occupying any part of slot.
func At(sessions []Session, trackID string, slot timeslot.Timeslot) (Session, bool) {
	for _, s := range sessions {
		if s.TrackID == trackID && timeslot.Overlaps(s.Timeslot, slot) {
			return s, true
		}
	}
	return Session{}, false
}

// Overlapping returns every pair of sessions breaking the no-overlap invariant.
func Overlapping(sessions []Session) [][2]Session {
	var pairs [][2]Session
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			if sessions[i].OverlapsWith(sessions[j]) {
				pairs = append(pairs, [2]Session{sessions[i], sessions[j]})
			}
		}
	}
	return pairs
}

// ResolveID resolves a full id or a unique id prefix against ids.
func ResolveID(ids []string, prefix string) (string, bool, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", false, nil
	}
	match := ""
	for _, id := range ids {
		if id == prefix {
			return id, true, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", false, fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
			}
			match = id
		}
	}
	return match, match != "", nil
}
