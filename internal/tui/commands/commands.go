// Package commands provides board command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conference-hall/hall/internal/optimistic"
	"github.com/conference-hall/hall/internal/schedule"
)

// persistTimeout bounds one repository write.
const persistTimeout = 10 * time.Second

// DayLoadedMsg is sent when the tracks and confirmed sessions of a day are loaded.
type DayLoadedMsg struct {
	Day      int // index among the event days
	Tracks   []schedule.Track
	Sessions []schedule.Session
}

// MutationSettledMsg is sent when a dispatched mutation was persisted or rejected.
type MutationSettledMsg struct {
	Settlement optimistic.Settlement
}

// CopiedMsg is sent after text was copied to the clipboard.
type CopiedMsg struct {
	What string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadDay loads the tracks and the sessions of day.
func LoadDay(repo schedule.Repository, index int, day schedule.Day) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		tracks, err := repo.ListTracks(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tracks: %w", err)}
		}

		from, to := day.Bounds()
		sessions, err := repo.ListSessions(ctx, from, to)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading sessions: %w", err)}
		}

		return DayLoadedMsg{Day: index, Tracks: tracks, Sessions: sessions}
	}
}

// Persist runs a dispatched request off the event loop.
// The outcome always comes back as a MutationSettledMsg, rejected or not.
func Persist(req optimistic.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return MutationSettledMsg{Settlement: req(ctx)}
	}
}

// Copy writes text to the clipboard through write.
func Copy(write func(string) error, what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return CopiedMsg{What: what}
	}
}

// Status shows msg as a temporary status line.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
