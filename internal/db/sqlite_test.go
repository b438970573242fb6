package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

var testDate = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, opts ...Option) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath, opts...)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func createTrack(t *testing.T, repo *SQLite, name string) schedule.Track {
	t.Helper()
	tr := schedule.Track{Name: name}
	if err := repo.CreateTrack(context.Background(), &tr); err != nil {
		t.Fatalf("CreateTrack(%q) failed: %v", name, err)
	}
	return tr
}

func newSession(t *testing.T, id, trackID, start, end string) schedule.Session {
	t.Helper()
	ts, err := timeslot.Between(testDate, start, end)
	if err != nil {
		t.Fatalf("Between(%s, %s) failed: %v", start, end, err)
	}
	return schedule.Session{ID: id, TrackID: trackID, Timeslot: ts}
}

func TestCreateTrack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := createTrack(t, repo, "  Room A ")
	b := createTrack(t, repo, "Room B")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected IDs to be generated")
	}
	if a.Name != "Room A" {
		t.Errorf("Name = %q, want trimmed", a.Name)
	}
	if a.Position != 0 || b.Position != 1 {
		t.Errorf("positions = %d, %d, want 0, 1", a.Position, b.Position)
	}

	tracks, err := repo.ListTracks(ctx)
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(tracks) != 2 || tracks[0].ID != a.ID || tracks[1].ID != b.ID {
		t.Errorf("ListTracks = %+v, want [A B]", tracks)
	}
}

func TestCreateTrack_EmptyName(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.CreateTrack(context.Background(), &schedule.Track{Name: "   "})
	if !errors.Is(err, schedule.ErrEmptyTrackName) {
		t.Errorf("error = %v, want ErrEmptyTrackName", err)
	}
}

func TestRenameTrack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	if err := repo.RenameTrack(ctx, tr.ID, "Amphitheater"); err != nil {
		t.Fatalf("RenameTrack failed: %v", err)
	}
	tracks, _ := repo.ListTracks(ctx)
	if tracks[0].Name != "Amphitheater" {
		t.Errorf("Name = %q, want Amphitheater", tracks[0].Name)
	}

	if err := repo.RenameTrack(ctx, "missing", "X"); !errors.Is(err, schedule.ErrTrackNotFound) {
		t.Errorf("rename missing track error = %v, want ErrTrackNotFound", err)
	}
}

func TestDeleteTrack_RemovesSessions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := createTrack(t, repo, "Room A")
	b := createTrack(t, repo, "Room B")

	for _, s := range []schedule.Session{
		newSession(t, "s1", a.ID, "09:00", "09:30"),
		newSession(t, "s2", b.ID, "09:00", "09:30"),
	} {
		if err := repo.CreateSession(ctx, s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	if err := repo.DeleteTrack(ctx, a.ID); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	sessions, err := repo.ListAllSessions(ctx)
	if err != nil {
		t.Fatalf("ListAllSessions failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s2" {
		t.Errorf("sessions after delete = %+v, want only s2", sessions)
	}

	if err := repo.DeleteTrack(ctx, a.ID); !errors.Is(err, schedule.ErrTrackNotFound) {
		t.Errorf("second delete error = %v, want ErrTrackNotFound", err)
	}
}

func TestCreateAndGetSession(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	s := newSession(t, "7f3a1c", tr.ID, "10:00", "10:45")
	s.Name = "Opening keynote"
	s.Language = "en"
	s.Color = schedule.ColorPurple
	s.Emojis = []string{"🎤", "🚀"}
	s.Proposal = &schedule.ProposalRef{ID: "p1", Title: "Go at scale", Speakers: []string{"Ada", "Grace"}}

	if err := repo.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := repo.GetSession(ctx, "7f3a1c")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !got.Timeslot.Equal(s.Timeslot) {
		t.Errorf("Timeslot = %s, want %s", got.Timeslot, s.Timeslot)
	}
	if got.Name != s.Name || got.Language != "en" || got.Color != schedule.ColorPurple {
		t.Errorf("decorative fields = %+v", got)
	}
	if len(got.Emojis) != 2 || got.Emojis[1] != "🚀" {
		t.Errorf("Emojis = %v", got.Emojis)
	}
	if got.Proposal == nil || got.Proposal.Title != "Go at scale" || len(got.Proposal.Speakers) != 2 {
		t.Errorf("Proposal = %+v", got.Proposal)
	}
}

func TestCreateSession_DefaultsColor(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	if err := repo.CreateSession(ctx, newSession(t, "s1", tr.ID, "09:00", "09:05")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	got, _ := repo.GetSession(ctx, "s1")
	if got.Color != schedule.DefaultColor {
		t.Errorf("Color = %q, want %q", got.Color, schedule.DefaultColor)
	}
	if got.Emojis != nil || got.Proposal != nil {
		t.Errorf("expected no emojis and no proposal, got %+v", got)
	}
}

func TestCreateSession_Validation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	tests := []struct {
		name    string
		session schedule.Session
		wantErr error
	}{
		{
			name:    "unknown track",
			session: newSession(t, "s1", "nope", "09:00", "09:30"),
			wantErr: schedule.ErrTrackNotFound,
		},
		{
			name:    "missing track",
			session: newSession(t, "s2", "", "09:00", "09:30"),
			wantErr: schedule.ErrMissingTrack,
		},
		{
			name: "inverted timeslot",
			session: schedule.Session{ID: "s3", TrackID: tr.ID, Timeslot: timeslot.Timeslot{
				Start: testDate.Add(10 * time.Hour), End: testDate.Add(9 * time.Hour),
			}},
			wantErr: timeslot.ErrInvalidTimeslot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateSession(ctx, tt.session)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateSession error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSession_StoresOverlaps(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	// Overlap prevention belongs to the scheduling engine, not the store.
	if err := repo.CreateSession(ctx, newSession(t, "s1", tr.ID, "09:00", "10:00")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := repo.CreateSession(ctx, newSession(t, "s2", tr.ID, "09:30", "10:30")); err != nil {
		t.Errorf("overlapping CreateSession failed: %v", err)
	}
}

func TestListSessions_DayBounds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	today := newSession(t, "today", tr.ID, "09:00", "09:30")
	tomorrow := today
	tomorrow.ID = "tomorrow"
	tomorrow.Timeslot = timeslot.MoveStart(today.Timeslot, today.Timeslot.Start.AddDate(0, 0, 1))
	late := newSession(t, "late", tr.ID, "23:55", "23:59")

	for _, s := range []schedule.Session{tomorrow, late, today} {
		if err := repo.CreateSession(ctx, s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	got, err := repo.ListSessions(ctx, testDate, testDate.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "today" || got[1].ID != "late" {
		t.Errorf("ListSessions = %v, want [today late]", sessionIDs(got))
	}
}

func TestListSessions_Location(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	repo := newTestRepo(t, WithLocation(paris))
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")

	day := time.Date(2025, 6, 12, 0, 0, 0, 0, paris)
	ts, _ := timeslot.Between(day, "09:00", "09:30")
	if err := repo.CreateSession(ctx, schedule.Session{ID: "s1", TrackID: tr.ID, Timeslot: ts}); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := repo.ListSessions(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(got) != 1 || got[0].Timeslot.String() != "09:00-09:30" {
		t.Errorf("ListSessions = %+v, want s1 at 09:00-09:30 Paris time", got)
	}
}

func TestUpdateSession(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := createTrack(t, repo, "Room A")
	b := createTrack(t, repo, "Room B")

	s := newSession(t, "s1", a.ID, "09:00", "09:30")
	s.Proposal = &schedule.ProposalRef{ID: "p1", Title: "Go at scale"}
	if err := repo.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	moved := newSession(t, "s1", b.ID, "14:00", "14:20")
	moved.Name = "Lightning talks"
	moved.Color = schedule.ColorOrange
	if err := repo.UpdateSession(ctx, moved); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	got, _ := repo.GetSession(ctx, "s1")
	if got.TrackID != b.ID || got.Timeslot.String() != "14:00-14:20" {
		t.Errorf("placement = %s %s, want Room B 14:00-14:20", got.TrackID, got.Timeslot)
	}
	if got.Name != "Lightning talks" || got.Color != schedule.ColorOrange {
		t.Errorf("decorative fields = %+v", got)
	}
	if got.Proposal == nil || got.Proposal.ID != "p1" {
		t.Errorf("Proposal = %+v, want p1 kept", got.Proposal)
	}
}

func TestUpdateSession_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	tr := createTrack(t, repo, "Room A")

	err := repo.UpdateSession(context.Background(), newSession(t, "ghost", tr.ID, "09:00", "09:30"))
	if !errors.Is(err, schedule.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestAttachProposal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")
	if err := repo.CreateSession(ctx, newSession(t, "s1", tr.ID, "09:00", "09:30")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	p := schedule.ProposalRef{ID: "p9", Title: "Fuzzing in practice", Speakers: []string{"Linus"}}
	if err := repo.AttachProposal(ctx, "s1", p); err != nil {
		t.Fatalf("AttachProposal failed: %v", err)
	}
	got, _ := repo.GetSession(ctx, "s1")
	if got.Title() != "Fuzzing in practice" {
		t.Errorf("Title() = %q, want proposal title", got.Title())
	}

	if err := repo.AttachProposal(ctx, "ghost", p); !errors.Is(err, schedule.ErrSessionNotFound) {
		t.Errorf("attach to missing session error = %v, want ErrSessionNotFound", err)
	}
}

func TestUpdateSession_RollsBackPlacementWhenProposalFails(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")
	if err := repo.CreateSession(ctx, newSession(t, "s1", tr.ID, "09:00", "09:30")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// Only the proposal write is refused
	if _, err := repo.db.ExecContext(ctx, `
		CREATE TRIGGER refuse_proposal BEFORE UPDATE OF proposal_title ON sessions
		WHEN NEW.proposal_title = 'refused'
		BEGIN SELECT RAISE(ABORT, 'proposal refused'); END
	`); err != nil {
		t.Fatalf("creating trigger failed: %v", err)
	}

	moved := newSession(t, "s1", tr.ID, "10:00", "10:30")
	moved.Proposal = &schedule.ProposalRef{ID: "p1", Title: "refused"}
	if err := repo.UpdateSession(ctx, moved); err == nil {
		t.Fatal("expected the proposal write to fail")
	}

	got, err := repo.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Timeslot.String() != "09:00-09:30" {
		t.Errorf("timeslot = %s, want the original 09:00-09:30", got.Timeslot)
	}
	if got.Proposal != nil {
		t.Errorf("proposal = %+v, want none", got.Proposal)
	}
}

func TestDeleteSession_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tr := createTrack(t, repo, "Room A")
	if err := repo.CreateSession(ctx, newSession(t, "s1", tr.ID, "09:00", "09:30")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.DeleteSession(ctx, "s1"); err != nil {
			t.Fatalf("DeleteSession #%d failed: %v", i+1, err)
		}
	}
	if err := repo.DeleteSession(ctx, "never-existed"); err != nil {
		t.Errorf("DeleteSession of absent id failed: %v", err)
	}

	if _, err := repo.GetSession(ctx, "s1"); !errors.Is(err, schedule.ErrSessionNotFound) {
		t.Errorf("GetSession after delete error = %v, want ErrSessionNotFound", err)
	}
}

func sessionIDs(sessions []schedule.Session) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}
