// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

// instantFormat stores instants as sortable UTC text.
const instantFormat = "2006-01-02T15:04:05Z"

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	loc *time.Location
}

var _ schedule.Repository = (*SQLite)(nil)

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLocation sets the timezone session times are returned in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *SQLite) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ListTracks returns all tracks ordered by position.
func (s *SQLite) ListTracks(ctx context.Context) ([]schedule.Track, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, position FROM tracks ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("querying tracks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tracks []schedule.Track
	for rows.Next() {
		var t schedule.Track
		if err := rows.Scan(&t.ID, &t.Name, &t.Position); err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tracks: %w", err)
	}

	return tracks, nil
}

// CreateTrack adds a track after the last one. An empty ID is replaced by a new UUID.
func (s *SQLite) CreateTrack(ctx context.Context, t *schedule.Track) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return schedule.ErrEmptyTrackName
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	var last sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(position) FROM tracks`).Scan(&last); err != nil {
		return fmt.Errorf("querying track position: %w", err)
	}
	t.Position = 0
	if last.Valid {
		t.Position = int(last.Int64) + 1
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO tracks (id, name, position) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.Position)
	if err != nil {
		return fmt.Errorf("inserting track: %w", err)
	}

	return nil
}

// RenameTrack changes a track name.
func (s *SQLite) RenameTrack(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return schedule.ErrEmptyTrackName
	}

	result, err := s.db.ExecContext(ctx, `UPDATE tracks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("renaming track: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrTrackNotFound, id)
	}

	return nil
}

// DeleteTrack removes a track and its sessions.
func (s *SQLite) DeleteTrack(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE track_id = ?`, id); err != nil {
		return fmt.Errorf("deleting track sessions: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting track: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrTrackNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

const sessionColumns = `
	id, track_id, start_at, end_at, name, language, color, emojis,
	proposal_id, proposal_title, proposal_speakers
`

// ListSessions returns sessions starting within [from, to), ordered by start.
func (s *SQLite) ListSessions(ctx context.Context, from, to time.Time) ([]schedule.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions
		WHERE start_at >= ? AND start_at < ?
		ORDER BY start_at, track_id, id
	`
	return s.querySessions(ctx, query, formatInstant(from), formatInstant(to))
}

// ListAllSessions returns every stored session ordered by start.
func (s *SQLite) ListAllSessions(ctx context.Context) ([]schedule.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY start_at, track_id, id`
	return s.querySessions(ctx, query)
}

// GetSession retrieves a session by ID.
func (s *SQLite) GetSession(ctx context.Context, id string) (schedule.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	sessions, err := s.querySessions(ctx, query, id)
	if err != nil {
		return schedule.Session{}, err
	}
	if len(sessions) == 0 {
		return schedule.Session{}, fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, id)
	}
	return sessions[0], nil
}

// CreateSession stores a session under its client-generated ID.
func (s *SQLite) CreateSession(ctx context.Context, sess schedule.Session) error {
	if sess.ID == "" {
		return errors.New("session id is required")
	}
	if err := s.validateSession(ctx, sess); err != nil {
		return err
	}

	emojis, err := encodeList(sess.Emojis)
	if err != nil {
		return err
	}
	proposalID, proposalTitle, speakers, err := encodeProposal(sess.Proposal)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (
			id, track_id, start_at, end_at, name, language, color, emojis,
			proposal_id, proposal_title, proposal_speakers
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		sess.ID,
		sess.TrackID,
		formatInstant(sess.Timeslot.Start),
		formatInstant(sess.Timeslot.End),
		sess.Name,
		sess.Language,
		colorOrDefault(sess.Color),
		emojis,
		proposalID,
		proposalTitle,
		speakers,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	return nil
}

// UpdateSession replaces the placement and decorative fields of a session.
// The stored proposal link is only replaced when sess carries one; both writes
// happen in one transaction.
func (s *SQLite) UpdateSession(ctx context.Context, sess schedule.Session) error {
	if err := s.validateSession(ctx, sess); err != nil {
		return err
	}

	emojis, err := encodeList(sess.Emojis)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET track_id = ?, start_at = ?, end_at = ?, name = ?, language = ?, color = ?, emojis = ?
		WHERE id = ?
	`,
		sess.TrackID,
		formatInstant(sess.Timeslot.Start),
		formatInstant(sess.Timeslot.End),
		sess.Name,
		sess.Language,
		colorOrDefault(sess.Color),
		emojis,
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, sess.ID)
	}

	if sess.Proposal != nil {
		if err := attachProposal(ctx, tx, sess.ID, *sess.Proposal); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AttachProposal links a session to an accepted proposal.
func (s *SQLite) AttachProposal(ctx context.Context, sessionID string, p schedule.ProposalRef) error {
	return attachProposal(ctx, s.db, sessionID, p)
}

func attachProposal(ctx context.Context, ex execer, sessionID string, p schedule.ProposalRef) error {
	proposalID, title, speakers, err := encodeProposal(&p)
	if err != nil {
		return err
	}

	result, err := ex.ExecContext(ctx,
		`UPDATE sessions SET proposal_id = ?, proposal_title = ?, proposal_speakers = ? WHERE id = ?`,
		proposalID, title, speakers, sessionID)
	if err != nil {
		return fmt.Errorf("attaching proposal: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, sessionID)
	}

	return nil
}

// DeleteSession removes a session. Deleting an absent ID is not an error.
func (s *SQLite) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *SQLite) validateSession(ctx context.Context, sess schedule.Session) error {
	if sess.TrackID == "" {
		return schedule.ErrMissingTrack
	}
	if !sess.Timeslot.Valid() {
		return fmt.Errorf("%w: %s", timeslot.ErrInvalidTimeslot, sess.Timeslot)
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tracks WHERE id = ?`, sess.TrackID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", schedule.ErrTrackNotFound, sess.TrackID)
	}
	if err != nil {
		return fmt.Errorf("querying track: %w", err)
	}

	return nil
}

func (s *SQLite) querySessions(ctx context.Context, query string, args ...any) ([]schedule.Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []schedule.Session
	for rows.Next() {
		var (
			sess           schedule.Session
			startAt, endAt string
			color          string
			emojis         string
			proposalID     sql.NullString
			proposalTitle  string
			speakers       string
		)

		err := rows.Scan(
			&sess.ID,
			&sess.TrackID,
			&startAt,
			&endAt,
			&sess.Name,
			&sess.Language,
			&color,
			&emojis,
			&proposalID,
			&proposalTitle,
			&speakers,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		start, err := s.parseInstant(startAt)
		if err != nil {
			return nil, fmt.Errorf("parsing session start: %w", err)
		}
		end, err := s.parseInstant(endAt)
		if err != nil {
			return nil, fmt.Errorf("parsing session end: %w", err)
		}
		sess.Timeslot = timeslot.Timeslot{Start: start, End: end}
		sess.Color = schedule.Color(color)

		if sess.Emojis, err = decodeList(emojis); err != nil {
			return nil, fmt.Errorf("decoding emojis: %w", err)
		}

		if proposalID.Valid {
			list, err := decodeList(speakers)
			if err != nil {
				return nil, fmt.Errorf("decoding speakers: %w", err)
			}
			sess.Proposal = &schedule.ProposalRef{ID: proposalID.String, Title: proposalTitle, Speakers: list}
		}

		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(instantFormat)
}

func (s *SQLite) parseInstant(v string) (time.Time, error) {
	t, err := time.Parse(instantFormat, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(s.loc), nil
}

func colorOrDefault(c schedule.Color) string {
	if c == "" {
		return string(schedule.DefaultColor)
	}
	return string(c)
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

func encodeProposal(p *schedule.ProposalRef) (sql.NullString, string, string, error) {
	if p == nil {
		return sql.NullString{}, "", "[]", nil
	}
	speakers, err := encodeList(p.Speakers)
	if err != nil {
		return sql.NullString{}, "", "", err
	}
	return sql.NullString{String: p.ID, Valid: true}, p.Title, speakers, nil
}
