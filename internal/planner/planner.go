// Package planner applies schedule edits against a repository.
//
// It is the synchronous counterpart of the board's optimistic dispatcher: the CLI
// and the MCP tools resolve references, run the conflict resolver and the drop
// transition table, then persist the resulting mutations before returning.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/dnd"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

var (
	// ErrSessionRequired is returned when a session reference is empty.
	ErrSessionRequired = errors.New("session id is required")
	// ErrMisaligned is returned for times off the slot grid.
	ErrMisaligned = fmt.Errorf("times must be multiples of %d minutes", int(timeslot.Interval.Minutes()))
)

// CheckAligned rejects instants off the slot interval grid anchored at dayStart.
func CheckAligned(dayStart time.Time, times ...time.Time) error {
	for _, t := range times {
		if !timeslot.Align(dayStart, t).Equal(t) {
			return fmt.Errorf("%w: %s", ErrMisaligned, t.Format("15:04:05"))
		}
	}
	return nil
}

// Service handles track and session edits.
type Service struct {
	repo   schedule.Repository
	logger *slog.Logger
}

// NewService creates a new planner service. A nil logger means slog.Default.
func NewService(repo schedule.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Agenda is the content of one event day.
type Agenda struct {
	Day      schedule.Day
	Tracks   []schedule.Track
	Sessions []schedule.Session
}

// Agenda loads the tracks and the sessions starting on day.
func (s *Service) Agenda(ctx context.Context, day schedule.Day) (Agenda, error) {
	tracks, err := s.repo.ListTracks(ctx)
	if err != nil {
		return Agenda{}, fmt.Errorf("listing tracks: %w", err)
	}
	from, to := day.Bounds()
	sessions, err := s.repo.ListSessions(ctx, from, to)
	if err != nil {
		return Agenda{}, fmt.Errorf("listing sessions: %w", err)
	}
	return Agenda{Day: day, Tracks: tracks, Sessions: sessions}, nil
}

// Tracks returns every track ordered by position.
func (s *Service) Tracks(ctx context.Context) ([]schedule.Track, error) {
	tracks, err := s.repo.ListTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	return tracks, nil
}

// AddTrack creates a track after the last one.
func (s *Service) AddTrack(ctx context.Context, name string) (schedule.Track, error) {
	t := schedule.Track{Name: name}
	if err := s.repo.CreateTrack(ctx, &t); err != nil {
		return schedule.Track{}, fmt.Errorf("creating track: %w", err)
	}
	s.logger.Info("track created", "track", t.ID, "name", t.Name)
	return t, nil
}

// ResolveTrack finds a track by id, unique id prefix or case-insensitive name.
func (s *Service) ResolveTrack(ctx context.Context, ref string) (schedule.Track, error) {
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return schedule.Track{}, err
	}
	return resolveTrack(tracks, ref)
}

func resolveTrack(tracks []schedule.Track, ref string) (schedule.Track, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return schedule.Track{}, schedule.ErrMissingTrack
	}
	for _, t := range tracks {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	id, ok, err := schedule.ResolveID(ids, ref)
	if err != nil {
		return schedule.Track{}, err
	}
	if !ok {
		return schedule.Track{}, fmt.Errorf("%w: %s", schedule.ErrTrackNotFound, ref)
	}
	for _, t := range tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return schedule.Track{}, fmt.Errorf("%w: %s", schedule.ErrTrackNotFound, ref)
}

// RenameTrack renames the track referenced by ref.
func (s *Service) RenameTrack(ctx context.Context, ref, name string) (schedule.Track, error) {
	t, err := s.ResolveTrack(ctx, ref)
	if err != nil {
		return schedule.Track{}, err
	}
	if err := s.repo.RenameTrack(ctx, t.ID, name); err != nil {
		return schedule.Track{}, fmt.Errorf("renaming track: %w", err)
	}
	t.Name = strings.TrimSpace(name)
	return t, nil
}

// RemoveTrack deletes the track referenced by ref together with its sessions.
func (s *Service) RemoveTrack(ctx context.Context, ref string) (schedule.Track, error) {
	t, err := s.ResolveTrack(ctx, ref)
	if err != nil {
		return schedule.Track{}, err
	}
	if err := s.repo.DeleteTrack(ctx, t.ID); err != nil {
		return schedule.Track{}, fmt.Errorf("deleting track: %w", err)
	}
	s.logger.Info("track deleted", "track", t.ID)
	return t, nil
}

// ResolveSession finds a session by id or unique id prefix.
func (s *Service) ResolveSession(ctx context.Context, ref string) (schedule.Session, error) {
	sessions, err := s.repo.ListAllSessions(ctx)
	if err != nil {
		return schedule.Session{}, fmt.Errorf("listing sessions: %w", err)
	}
	return resolveSession(sessions, ref)
}

func resolveSession(sessions []schedule.Session, ref string) (schedule.Session, error) {
	if strings.TrimSpace(ref) == "" {
		return schedule.Session{}, ErrSessionRequired
	}
	ids := make([]string, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	id, ok, err := schedule.ResolveID(ids, ref)
	if err != nil {
		return schedule.Session{}, err
	}
	if !ok {
		return schedule.Session{}, fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, ref)
	}
	sess, _ := schedule.FindByID(sessions, id)
	return sess, nil
}

// AddRequest describes a session created through a form.
type AddRequest struct {
	TrackRef string
	Timeslot timeslot.Timeslot
	Name     string
	Language string
	Color    schedule.Color
	Emojis   []string
}

// AddSession stores a new session at exactly the requested placement.
// Overlapping an existing session on the track is rejected, never corrected.
func (s *Service) AddSession(ctx context.Context, req AddRequest) (schedule.Session, error) {
	if !req.Timeslot.Valid() {
		return schedule.Session{}, timeslot.ErrInvalidTimeslot
	}
	if err := CheckAligned(dateutil.TruncateToDay(req.Timeslot.Start), req.Timeslot.Start, req.Timeslot.End); err != nil {
		return schedule.Session{}, err
	}
	t, err := s.ResolveTrack(ctx, req.TrackRef)
	if err != nil {
		return schedule.Session{}, err
	}
	sessions, err := s.repo.ListAllSessions(ctx)
	if err != nil {
		return schedule.Session{}, fmt.Errorf("listing sessions: %w", err)
	}

	color := req.Color
	if color == "" {
		color = schedule.DefaultColor
	}
	sess := schedule.Session{
		ID:       uuid.NewString(),
		TrackID:  t.ID,
		Timeslot: req.Timeslot,
		Name:     strings.TrimSpace(req.Name),
		Language: strings.TrimSpace(req.Language),
		Color:    color,
		Emojis:   req.Emojis,
	}
	if err := schedule.CheckAvailable(sess, sessions); err != nil {
		return schedule.Session{}, err
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return schedule.Session{}, fmt.Errorf("creating session: %w", err)
	}
	s.logger.Info("session created", "session", sess.ID, "track", t.ID, "timeslot", sess.Timeslot.String())
	return sess, nil
}

// Details holds the decorative fields of a session. Nil fields are left unchanged.
type Details struct {
	Name     *string
	Language *string
	Color    *schedule.Color
	Emojis   *[]string
}

// UpdateDetails changes the decorative fields of a session. Placement is untouched.
func (s *Service) UpdateDetails(ctx context.Context, ref string, d Details) (schedule.Session, error) {
	sess, err := s.ResolveSession(ctx, ref)
	if err != nil {
		return schedule.Session{}, err
	}
	if d.Name != nil {
		sess.Name = strings.TrimSpace(*d.Name)
	}
	if d.Language != nil {
		sess.Language = strings.TrimSpace(*d.Language)
	}
	if d.Color != nil {
		sess.Color = *d.Color
	}
	if d.Emojis != nil {
		sess.Emojis = *d.Emojis
	}
	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return schedule.Session{}, fmt.Errorf("updating session: %w", err)
	}
	return sess, nil
}

// MoveSession moves a session to trackRef starting at start, keeping its duration.
// It returns the sessions whose placement changed; none when the drop was a no-op.
func (s *Service) MoveSession(ctx context.Context, ref, trackRef string, start time.Time) ([]schedule.Session, error) {
	if err := CheckAligned(dateutil.TruncateToDay(start), start); err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	sess, err := resolveSession(sessions, ref)
	if err != nil {
		return nil, err
	}
	trackID := sess.TrackID
	if trackRef != "" {
		t, err := s.ResolveTrack(ctx, trackRef)
		if err != nil {
			return nil, err
		}
		trackID = t.ID
	}

	cell := timeslot.Timeslot{Start: start, End: start.Add(timeslot.Interval)}
	src := dnd.Source{Action: dnd.ActionMove, Session: sess}
	return s.apply(ctx, dnd.Drop(src, dnd.TimeslotTarget(trackID, cell), sessions))
}

// ResizeSession moves the end of a session towards end, keeping its start.
func (s *Service) ResizeSession(ctx context.Context, ref string, end time.Time) ([]schedule.Session, error) {
	if err := CheckAligned(dateutil.TruncateToDay(end), end); err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	sess, err := resolveSession(sessions, ref)
	if err != nil {
		return nil, err
	}

	cell := timeslot.Timeslot{Start: end.Add(-timeslot.Interval), End: end}
	src := dnd.Source{Action: dnd.ActionResize, Session: sess}
	return s.apply(ctx, dnd.Drop(src, dnd.TimeslotTarget(sess.TrackID, cell), sessions))
}

// SwapSessions exchanges the track and timeslot of two sessions.
func (s *Service) SwapSessions(ctx context.Context, refA, refB string) ([]schedule.Session, error) {
	sessions, err := s.repo.ListAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	a, err := resolveSession(sessions, refA)
	if err != nil {
		return nil, err
	}
	b, err := resolveSession(sessions, refB)
	if err != nil {
		return nil, err
	}

	src := dnd.Source{Action: dnd.ActionMove, Session: a}
	return s.apply(ctx, dnd.Drop(src, dnd.SessionTarget(b), sessions))
}

// DeleteSession removes the session referenced by ref.
func (s *Service) DeleteSession(ctx context.Context, ref string) (schedule.Session, error) {
	sess, err := s.ResolveSession(ctx, ref)
	if err != nil {
		return schedule.Session{}, err
	}
	if err := s.repo.DeleteSession(ctx, sess.ID); err != nil {
		return schedule.Session{}, fmt.Errorf("deleting session: %w", err)
	}
	s.logger.Info("session deleted", "session", sess.ID)
	return sess, nil
}

// apply persists update mutations in order and returns the updated sessions.
func (s *Service) apply(ctx context.Context, mutations []schedule.Mutation) ([]schedule.Session, error) {
	updated := make([]schedule.Session, 0, len(mutations))
	for _, m := range mutations {
		if m.Kind != schedule.MutationUpdate {
			continue
		}
		if err := s.repo.UpdateSession(ctx, m.Payload); err != nil {
			return updated, fmt.Errorf("applying %s: %w", m, err)
		}
		s.logger.Debug("mutation applied", "mutation", m.String())
		updated = append(updated, m.Payload)
	}
	return updated, nil
}
