package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/conference-hall/hall/internal/timeslot"
)

var testDay = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

// slot builds a timeslot on testDay from "HH:MM" clocks.
func slot(t *testing.T, start, end string) timeslot.Timeslot {
	t.Helper()
	s, err := timeslot.Between(testDay, start, end)
	if err != nil {
		t.Fatalf("building timeslot %s-%s: %v", start, end, err)
	}
	return s
}

// makeSession creates a session on trackID between two clocks.
func makeSession(t *testing.T, id, trackID, start, end string) Session {
	t.Helper()
	return Session{
		ID:       id,
		TrackID:  trackID,
		Timeslot: slot(t, start, end),
		Name:     "Session " + id,
		Color:    DefaultColor,
	}
}

func TestResizeToTimeslot(t *testing.T) {
	a := makeSession(t, "A", "room-a", "10:00", "10:30")
	b := makeSession(t, "B", "room-a", "10:40", "11:00")
	other := makeSession(t, "C", "room-b", "10:35", "12:00")
	sessions := []Session{a, b, other}

	tests := []struct {
		name    string
		session Session
		target  timeslot.Timeslot
		want    string
	}{
		{name: "clamped to next session start", session: a, target: slot(t, "10:40", "10:45"), want: "10:00-10:40"},
		{name: "grow within gap", session: a, target: slot(t, "10:30", "10:35"), want: "10:00-10:35"},
		{name: "shrink", session: a, target: slot(t, "10:10", "10:15"), want: "10:00-10:15"},
		{name: "end at start gives minimum duration", session: a, target: slot(t, "09:55", "10:00"), want: "10:00-10:05"},
		{name: "end before start gives minimum duration", session: a, target: slot(t, "09:00", "09:05"), want: "10:00-10:05"},
		{name: "last session on track is not clamped", session: b, target: slot(t, "12:25", "12:30"), want: "10:40-12:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeToTimeslot(tt.session, tt.target, sessions)
			if got.Timeslot.String() != tt.want {
				t.Errorf("ResizeToTimeslot = %s, want %s", got.Timeslot, tt.want)
			}
			if got.ID != tt.session.ID || got.TrackID != tt.session.TrackID {
				t.Errorf("resize changed identity: %+v", got)
			}
		})
	}
}

func TestResizeToTimeslot_IgnoresOtherTracks(t *testing.T) {
	a := makeSession(t, "A", "room-a", "10:00", "10:30")
	other := makeSession(t, "C", "room-b", "10:35", "12:00")

	got := ResizeToTimeslot(a, slot(t, "11:00", "11:05"), []Session{a, other})
	if got.Timeslot.String() != "10:00-11:05" {
		t.Errorf("ResizeToTimeslot = %s, want 10:00-11:05", got.Timeslot)
	}
}

func TestMoveToTimeslot(t *testing.T) {
	a := makeSession(t, "A", "room-a", "10:00", "10:30")
	c := makeSession(t, "C", "room-x", "11:10", "11:40")
	d := makeSession(t, "D", "room-x", "09:00", "10:00")
	sessions := []Session{a, c, d}

	tests := []struct {
		name      string
		trackID   string
		target    timeslot.Timeslot
		wantTrack string
		want      string
	}{
		{name: "clamped before next session", trackID: "room-x", target: slot(t, "11:00", "11:05"), wantTrack: "room-x", want: "11:00-11:10"},
		{name: "fits in gap", trackID: "room-x", target: slot(t, "10:00", "10:05"), wantTrack: "room-x", want: "10:00-10:30"},
		{name: "after last session", trackID: "room-x", target: slot(t, "12:00", "12:05"), wantTrack: "room-x", want: "12:00-12:30"},
		{name: "same track later", trackID: "room-a", target: slot(t, "14:00", "14:05"), wantTrack: "room-a", want: "14:00-14:30"},
		{name: "overlapping own slot is allowed", trackID: "room-a", target: slot(t, "10:10", "10:15"), wantTrack: "room-a", want: "10:10-10:40"},
		{name: "start inside another session is a no-op", trackID: "room-x", target: slot(t, "11:20", "11:25"), wantTrack: "room-a", want: "10:00-10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveToTimeslot(a, tt.trackID, tt.target, sessions)
			if got.TrackID != tt.wantTrack {
				t.Errorf("MoveToTimeslot track = %s, want %s", got.TrackID, tt.wantTrack)
			}
			if got.Timeslot.String() != tt.want {
				t.Errorf("MoveToTimeslot = %s, want %s", got.Timeslot, tt.want)
			}
			if got.ID != a.ID {
				t.Errorf("move changed session id to %s", got.ID)
			}
		})
	}
}

func TestMoveToTimeslot_KeepsDecorativeFields(t *testing.T) {
	a := makeSession(t, "A", "room-a", "10:00", "10:30")
	a.Emojis = []string{"🔥"}
	a.Proposal = &ProposalRef{ID: "p1", Title: "Go at scale"}

	got := MoveToTimeslot(a, "room-b", slot(t, "15:00", "15:05"), []Session{a})
	if got.Proposal == nil || got.Proposal.ID != "p1" {
		t.Fatalf("proposal lost on move: %+v", got.Proposal)
	}
	got.Emojis[0] = "✅"
	if a.Emojis[0] != "🔥" {
		t.Error("move result shares emojis slice with the source session")
	}
}

func TestSwitchSessions(t *testing.T) {
	a := makeSession(t, "A", "track-a", "10:00", "10:30")
	d := makeSession(t, "D", "track-b", "14:00", "14:20")

	na, nd := SwitchSessions(a, d)
	if na.TrackID != "track-b" || na.Timeslot.String() != "14:00-14:20" {
		t.Errorf("A after switch = %s@%s, want 14:00-14:20@track-b", na.Timeslot, na.TrackID)
	}
	if nd.TrackID != "track-a" || nd.Timeslot.String() != "10:00-10:30" {
		t.Errorf("D after switch = %s@%s, want 10:00-10:30@track-a", nd.Timeslot, nd.TrackID)
	}

	ra, rd := SwitchSessions(na, nd)
	if ra.TrackID != a.TrackID || !ra.Timeslot.Equal(a.Timeslot) {
		t.Errorf("switch twice should restore A, got %s@%s", ra.Timeslot, ra.TrackID)
	}
	if rd.TrackID != d.TrackID || !rd.Timeslot.Equal(d.Timeslot) {
		t.Errorf("switch twice should restore D, got %s@%s", rd.Timeslot, rd.TrackID)
	}
}

func TestCheckAvailable(t *testing.T) {
	existing := []Session{
		makeSession(t, "A", "room-a", "10:00", "10:30"),
		makeSession(t, "B", "room-b", "10:00", "11:00"),
	}

	t.Run("free range", func(t *testing.T) {
		s := makeSession(t, "N", "room-a", "10:30", "11:00")
		if err := CheckAvailable(s, existing); err != nil {
			t.Errorf("CheckAvailable = %v, want nil", err)
		}
	})

	t.Run("overlap rejected", func(t *testing.T) {
		s := makeSession(t, "N", "room-a", "10:15", "10:45")
		err := CheckAvailable(s, existing)
		if !errors.Is(err, ErrSessionOverlap) {
			t.Fatalf("CheckAvailable = %v, want ErrSessionOverlap", err)
		}
		var overlap *OverlapError
		if !errors.As(err, &overlap) || overlap.With.ID != "A" {
			t.Errorf("expected overlap with A, got %v", err)
		}
	})

	t.Run("editing itself is not an overlap", func(t *testing.T) {
		s := existing[0]
		s.Timeslot = slot(t, "10:00", "10:45")
		if err := CheckAvailable(s, existing); err != nil {
			t.Errorf("CheckAvailable = %v, want nil", err)
		}
	})

	t.Run("missing track", func(t *testing.T) {
		s := makeSession(t, "N", "", "12:00", "12:30")
		if !errors.Is(CheckAvailable(s, existing), ErrMissingTrack) {
			t.Error("expected ErrMissingTrack")
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		s := makeSession(t, "N", "room-a", "12:00", "12:30")
		s.Timeslot.End = s.Timeslot.Start
		if !errors.Is(CheckAvailable(s, existing), timeslot.ErrInvalidTimeslot) {
			t.Error("expected ErrInvalidTimeslot")
		}
	})
}

func TestResolvedPlacementsNeverOverlap(t *testing.T) {
	sessions := []Session{
		makeSession(t, "A", "room-a", "09:00", "09:45"),
		makeSession(t, "B", "room-a", "10:00", "10:30"),
		makeSession(t, "C", "room-b", "09:30", "10:15"),
		makeSession(t, "D", "room-b", "11:00", "12:00"),
	}
	day, err := NewDay(testDay, time.UTC, "08:00", "13:00")
	if err != nil {
		t.Fatalf("NewDay: %v", err)
	}

	for _, moving := range sessions {
		for _, track := range []string{"room-a", "room-b"} {
			for i := 0; i < day.Slots(); i++ {
				target := day.Slot(i)

				moved := MoveToTimeslot(moving, track, target, sessions)
				if pairs := Overlapping(replace(sessions, moved)); len(pairs) > 0 {
					t.Fatalf("move %s to %s@%s produced overlap %s/%s", moving.ID, target, track, pairs[0][0].ID, pairs[0][1].ID)
				}

				resized := ResizeToTimeslot(moving, target, sessions)
				if pairs := Overlapping(replace(sessions, resized)); len(pairs) > 0 {
					t.Fatalf("resize %s to %s produced overlap %s/%s", moving.ID, target, pairs[0][0].ID, pairs[0][1].ID)
				}
			}
		}
	}
}

// replace returns sessions with the entry sharing s.ID swapped for s.
func replace(sessions []Session, s Session) []Session {
	out := make([]Session, len(sessions))
	for i, existing := range sessions {
		if existing.ID == s.ID {
			out[i] = s
		} else {
			out[i] = existing
		}
	}
	return out
}
