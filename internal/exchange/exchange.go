// Package exchange reads and writes schedules as YAML documents.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

const dateFormat = "2006-01-02"

// ErrInvalidDocument is returned for documents that cannot describe a schedule.
var ErrInvalidDocument = errors.New("invalid schedule document")

// Document is the YAML representation of a schedule.
type Document struct {
	Event    string     `yaml:"event,omitempty"`
	Timezone string     `yaml:"timezone"`
	Tracks   []TrackDoc `yaml:"tracks"`
}

// TrackDoc is one track with its sessions.
type TrackDoc struct {
	ID       string       `yaml:"id,omitempty"`
	Name     string       `yaml:"name"`
	Sessions []SessionDoc `yaml:"sessions,omitempty"`
}

// SessionDoc is one session. Times are wall clock in the document timezone.
type SessionDoc struct {
	ID       string       `yaml:"id,omitempty"`
	Date     string       `yaml:"date"`
	Start    string       `yaml:"start"`
	End      string       `yaml:"end"`
	Name     string       `yaml:"name,omitempty"`
	Language string       `yaml:"language,omitempty"`
	Color    string       `yaml:"color,omitempty"`
	Emojis   []string     `yaml:"emojis,flow,omitempty"`
	Proposal *ProposalDoc `yaml:"proposal,omitempty"`
}

// ProposalDoc is the proposal a session presents.
type ProposalDoc struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title,omitempty"`
	Speakers []string `yaml:"speakers,flow,omitempty"`
}

// Build creates a document from tracks and their sessions, in loc.
func Build(event string, loc *time.Location, tracks []schedule.Track, sessions []schedule.Session) Document {
	if loc == nil {
		loc = time.UTC
	}
	doc := Document{Event: event, Timezone: loc.String()}
	for _, t := range tracks {
		td := TrackDoc{ID: t.ID, Name: t.Name}
		for _, s := range schedule.OnTrack(sessions, t.ID) {
			td.Sessions = append(td.Sessions, sessionDoc(s, loc))
		}
		doc.Tracks = append(doc.Tracks, td)
	}
	return doc
}

func sessionDoc(s schedule.Session, loc *time.Location) SessionDoc {
	ts := s.Timeslot.In(loc)
	sd := SessionDoc{
		ID:       s.ID,
		Date:     ts.Start.Format(dateFormat),
		Start:    ts.Start.Format("15:04"),
		End:      ts.End.Format("15:04"),
		Name:     s.Name,
		Language: s.Language,
		Emojis:   s.Emojis,
	}
	if s.Color != schedule.DefaultColor {
		sd.Color = string(s.Color)
	}
	if s.Proposal != nil {
		sd.Proposal = &ProposalDoc{ID: s.Proposal.ID, Title: s.Proposal.Title, Speakers: s.Proposal.Speakers}
	}
	return sd
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return nil
}

// Decode reads a YAML document.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Schedule converts the document into tracks and sessions.
// Missing ids are generated. fallback is used when the document has no timezone.
// Sessions overlapping on a track make the whole document invalid.
func (d Document) Schedule(fallback *time.Location) ([]schedule.Track, []schedule.Session, error) {
	loc := fallback
	if loc == nil {
		loc = time.UTC
	}
	if d.Timezone != "" {
		l, err := time.LoadLocation(d.Timezone)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidDocument, d.Timezone, err)
		}
		loc = l
	}

	var (
		tracks   []schedule.Track
		sessions []schedule.Session
	)
	for i, td := range d.Tracks {
		if td.Name == "" {
			return nil, nil, fmt.Errorf("%w: track #%d: %v", ErrInvalidDocument, i+1, schedule.ErrEmptyTrackName)
		}
		t := schedule.Track{ID: td.ID, Name: td.Name, Position: i}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		tracks = append(tracks, t)

		for _, sd := range td.Sessions {
			s, err := sd.session(t.ID, loc)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: track %q: %v", ErrInvalidDocument, td.Name, err)
			}
			sessions = append(sessions, s)
		}
	}

	if pairs := schedule.Overlapping(sessions); len(pairs) > 0 {
		err := &schedule.OverlapError{Session: pairs[0][1], With: pairs[0][0]}
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return tracks, sessions, nil
}

func (sd SessionDoc) session(trackID string, loc *time.Location) (schedule.Session, error) {
	date, err := time.ParseInLocation(dateFormat, sd.Date, loc)
	if err != nil {
		return schedule.Session{}, fmt.Errorf("session %q: date must be YYYY-MM-DD, got %q", sd.Name, sd.Date)
	}
	ts, err := timeslot.Between(date, sd.Start, sd.End)
	if err != nil {
		return schedule.Session{}, fmt.Errorf("session %q: %w", sd.Name, err)
	}
	if !timeslot.IsAligned(date, ts) {
		return schedule.Session{}, fmt.Errorf("session %q: %s is not on the 5 minute grid", sd.Name, ts)
	}
	color, err := schedule.ParseColor(sd.Color)
	if err != nil {
		return schedule.Session{}, fmt.Errorf("session %q: %w", sd.Name, err)
	}

	s := schedule.Session{
		ID:       sd.ID,
		TrackID:  trackID,
		Timeslot: ts,
		Name:     sd.Name,
		Language: sd.Language,
		Color:    color,
		Emojis:   sd.Emojis,
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if sd.Proposal != nil {
		s.Proposal = &schedule.ProposalRef{ID: sd.Proposal.ID, Title: sd.Proposal.Title, Speakers: sd.Proposal.Speakers}
	}
	return s, nil
}

// Export writes every track and session of repo to w.
func Export(ctx context.Context, repo schedule.Repository, w io.Writer, event string, loc *time.Location) error {
	tracks, err := repo.ListTracks(ctx)
	if err != nil {
		return fmt.Errorf("listing tracks: %w", err)
	}
	sessions, err := repo.ListAllSessions(ctx)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	return Encode(w, Build(event, loc, tracks, sessions))
}

// Summary counts what an import changed.
type Summary struct {
	TracksCreated   int
	SessionsCreated int
	SessionsUpdated int
}

// Import merges the document read from r into repo.
//
// Tracks are matched by id, then by name. Sessions with a known id are updated,
// others are created. Every session is checked against the sessions already stored,
// so an import never introduces an overlap; the first conflict aborts it.
func Import(ctx context.Context, repo schedule.Repository, r io.Reader, loc *time.Location) (Summary, error) {
	var sum Summary

	doc, err := Decode(r)
	if err != nil {
		return sum, err
	}
	tracks, sessions, err := doc.Schedule(loc)
	if err != nil {
		return sum, err
	}

	existingTracks, err := repo.ListTracks(ctx)
	if err != nil {
		return sum, fmt.Errorf("listing tracks: %w", err)
	}
	trackIDs := make(map[string]string, len(tracks))
	for _, t := range tracks {
		id, ok := matchTrack(existingTracks, t)
		if !ok {
			created := schedule.Track{ID: t.ID, Name: t.Name}
			if err := repo.CreateTrack(ctx, &created); err != nil {
				return sum, fmt.Errorf("creating track %q: %w", t.Name, err)
			}
			existingTracks = append(existingTracks, created)
			sum.TracksCreated++
			id = created.ID
		}
		trackIDs[t.ID] = id
	}

	stored, err := repo.ListAllSessions(ctx)
	if err != nil {
		return sum, fmt.Errorf("listing sessions: %w", err)
	}
	for _, s := range sessions {
		s.TrackID = trackIDs[s.TrackID]
		if err := schedule.CheckAvailable(s, stored); err != nil {
			return sum, fmt.Errorf("importing session %q: %w", s.Title(), err)
		}

		if _, found := schedule.FindByID(stored, s.ID); found {
			if err := repo.UpdateSession(ctx, s); err != nil {
				return sum, fmt.Errorf("updating session %q: %w", s.Title(), err)
			}
			stored = replace(stored, s)
			sum.SessionsUpdated++
			continue
		}
		if err := repo.CreateSession(ctx, s); err != nil {
			return sum, fmt.Errorf("creating session %q: %w", s.Title(), err)
		}
		stored = append(stored, s)
		sum.SessionsCreated++
	}

	return sum, nil
}

func matchTrack(existing []schedule.Track, t schedule.Track) (string, bool) {
	for _, e := range existing {
		if e.ID == t.ID {
			return e.ID, true
		}
	}
	for _, e := range existing {
		if e.Name == t.Name {
			return e.ID, true
		}
	}
	return "", false
}

func replace(sessions []schedule.Session, s schedule.Session) []schedule.Session {
	out := make([]schedule.Session, 0, len(sessions))
	for _, existing := range sessions {
		if existing.ID == s.ID {
			out = append(out, s)
			continue
		}
		out = append(out, existing)
	}
	return out
}
