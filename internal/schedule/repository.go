package schedule

import (
	"context"
	"time"
)

// Repository defines the storage interface for tracks and sessions.
// It stores whatever valid placement it is given and performs no overlap checks.
type Repository interface {
	// ListTracks returns all tracks ordered by position.
	ListTracks(ctx context.Context) ([]Track, error)

	// CreateTrack adds a track. Position is assigned after the last track.
	CreateTrack(ctx context.Context, t *Track) error

	// RenameTrack changes a track name.
	// Returns ErrTrackNotFound for unknown ids.
	RenameTrack(ctx context.Context, id, name string) error

	// DeleteTrack removes a track and its sessions.
	DeleteTrack(ctx context.Context, id string) error

	// ListSessions returns sessions starting within [from, to).
	ListSessions(ctx context.Context, from, to time.Time) ([]Session, error)

	// ListAllSessions returns every stored session.
	ListAllSessions(ctx context.Context) ([]Session, error)

	// GetSession retrieves a session by id.
	// Returns ErrSessionNotFound for unknown ids.
	GetSession(ctx context.Context, id string) (Session, error)

	// CreateSession stores a session under its client-generated id.
	CreateSession(ctx context.Context, s Session) error

	// UpdateSession replaces the placement and decorative fields of a session.
	// Returns ErrSessionNotFound for unknown ids.
	UpdateSession(ctx context.Context, s Session) error

	// DeleteSession removes a session. Deleting an absent id is not an error.
	DeleteSession(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
