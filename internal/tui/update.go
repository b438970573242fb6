package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conference-hall/hall/internal/optimistic"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil

	case commands.DayLoadedMsg:
		// A reload of a day we already left
		if msg.Day != m.dayIndex {
			return m, nil
		}
		m.tracks = msg.Tracks
		m.dispatcher.Store().SetConfirmed(msg.Sessions)
		m.loading = false
		if !m.focused {
			m.focusNow()
			m.focused = true
		}
		m.clampCursor()
		if m.mode == ModeDrag {
			m.dragOver()
		}
		return m, nil

	case commands.MutationSettledMsg:
		s := msg.Settlement
		store := m.dispatcher.Store()
		if s.Err == nil {
			// Fold the confirmed change in before retracting the pending one.
			store.SetConfirmed(optimistic.Merge(store.Confirmed(), []schedule.Mutation{s.Mutation}))
		}
		m.dispatcher.Settle(s)
		if s.Err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", s.Err)
			m.statusTime = m.now().Add(errorDuration)
		}
		return m, m.loadDay()

	case commands.CopiedMsg:
		return m, commands.Status("Copied " + msg.What + " to clipboard")

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(errorDuration)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusDuration)
		return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blink and other input messages go to the open form
	if m.mode == ModeModal && m.modalType == ModalSessionForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}
