package mocks

import (
	"context"
	"time"

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/stretchr/testify/mock"
)

// Repository is a mock for schedule.Repository.
type Repository struct {
	mock.Mock
}

var _ schedule.Repository = (*Repository)(nil)

func (m *Repository) ListTracks(ctx context.Context) ([]schedule.Track, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]schedule.Track); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) CreateTrack(ctx context.Context, t *schedule.Track) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *Repository) RenameTrack(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *Repository) DeleteTrack(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository) ListSessions(ctx context.Context, from, to time.Time) ([]schedule.Session, error) {
	args := m.Called(ctx, from, to)
	if list, ok := args.Get(0).([]schedule.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) ListAllSessions(ctx context.Context) ([]schedule.Session, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]schedule.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) GetSession(ctx context.Context, id string) (schedule.Session, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(schedule.Session); ok {
		return s, args.Error(1)
	}
	return schedule.Session{}, args.Error(1)
}

func (m *Repository) CreateSession(ctx context.Context, s schedule.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *Repository) UpdateSession(ctx context.Context, s schedule.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *Repository) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository) Close() error {
	args := m.Called()
	return args.Error(0)
}
