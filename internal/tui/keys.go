package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conference-hall/hall/internal/dnd"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/tui/commands"
	"github.com/conference-hall/hall/internal/tui/view"
)

// detailWidth is the wrap width of rendered session details inside the modal.
const detailWidth = 58

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", "key", msg.String(), "mode", m.mode.String())

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSelect:
		return m.handleSelectKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.cursor.Track--
	case "l", "right":
		m.cursor.Track++
	case "k", "up":
		m.cursor.Row--
	case "j", "down":
		m.cursor.Row++
	case "g", "home":
		m.cursor.Row = 0
	case "G", "end":
		m.cursor.Row = m.rowCount() - 1
	case "t":
		m.focusNow()

	// Days
	case "[":
		return m.switchDay(m.dayIndex - 1)
	case "]":
		return m.switchDay(m.dayIndex + 1)

	// Zoom keeps the cursor on the same time
	case "+", "=":
		return m.setZoom(true), nil
	case "-":
		return m.setZoom(false), nil

	// Sessions
	case " ", "v":
		return m.startSelection()
	case "enter":
		if s, ok := m.cursorSession(); ok {
			return m.openDetail(s), nil
		}
		return m.openNewSession(m.rowSlot(m.cursor.Row))
	case "n":
		if _, ok := m.cursorSession(); ok {
			m.statusMsg = "This slot is taken"
			return m, nil
		}
		return m.openNewSession(m.rowSlot(m.cursor.Row))
	case "e":
		if s, ok := m.cursorSession(); ok {
			return m.openEditSession(s)
		}
	case "x", "d":
		if s, ok := m.cursorSession(); ok {
			return m.openConfirmDelete(s), nil
		}
	case "m":
		if s, ok := m.cursorSession(); ok {
			return m.startDrag(dnd.ActionMove, s)
		}
	case "r":
		if s, ok := m.cursorSession(); ok {
			return m.startDrag(dnd.ActionResize, s)
		}

	case "y":
		day, ok := m.currentDay()
		if !ok {
			return m, nil
		}
		title := view.TitleLine(m.config.Event.Name, m.dayIndex, len(m.days), day)
		md := view.AgendaMarkdown(title, m.tracks, m.sessions(), m.loc)
		return m, commands.Copy(m.clipboard, "agenda", md)
	}

	m.clampCursor()
	return m, nil
}

func (m Model) switchDay(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(m.days) || index == m.dayIndex {
		return m, nil
	}
	m.dayIndex = index
	m.selection.Reset()
	m.drag.Cancel()
	m.loading = true
	m.focused = false
	m.clampCursor()
	return m, m.loadDay()
}

func (m Model) setZoom(in bool) Model {
	at := m.rowSlot(m.cursor.Row).Start
	if in {
		m.zoom = m.zoom.In()
	} else {
		m.zoom = m.zoom.Out()
	}
	m.cursor.Row = m.rowOf(at)
	m.clampCursor()
	return m
}

// startSelection anchors a new session range on the cursor cell.
func (m Model) startSelection() (tea.Model, tea.Cmd) {
	if len(m.tracks) == 0 {
		return m, nil
	}
	if !m.selection.Start(m.trackID(m.cursor.Track), m.rowSlot(m.cursor.Row), m.sessions()) {
		m.statusMsg = "This slot is taken"
		return m, nil
	}
	m.mode = ModeSelect
	return m, nil
}

// handleSelectKeys handles keys while extending a new session range.
// The cursor only moves onto rows the selection accepts.
func (m Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := m.cursor.Row
	switch msg.String() {
	case "esc":
		m.selection.Reset()
		m.mode = ModeNormal
		return m, nil

	case "enter", " ", "v":
		sel, ok := m.selection.Select()
		m.mode = ModeNormal
		if !ok {
			return m, nil
		}
		m.cursor.Track = max(0, m.trackIndex(sel.TrackID))
		return m.openNewSession(sel.Timeslot)

	case "k", "up":
		row--
	case "j", "down":
		row++
	default:
		return m, nil
	}

	if row < 0 || row >= m.rowCount() {
		return m, nil
	}
	if !m.selection.Hover(m.trackID(m.cursor.Track), m.rowSlot(row), m.sessions()) {
		m.statusMsg = "Sessions cannot overlap"
		return m, nil
	}
	m.cursor.Row = row
	m.clampCursor()
	return m, nil
}

// startDrag picks up s for a move or a resize. Moves grab the top of the block,
// resizes grab its bottom.
func (m Model) startDrag(action dnd.Action, s schedule.Session) (tea.Model, tea.Cmd) {
	if err := m.drag.Start(dnd.Source{Action: action, Session: s}, m.zoom); err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	first, last := m.blockRows(s.Timeslot)
	if action == dnd.ActionMove {
		m.cursor.Row = first
	} else {
		m.cursor.Row = last
	}
	m.cursor.Track = max(0, m.trackIndex(s.TrackID))
	m.mode = ModeDrag
	m.clampCursor()
	m.dragOver()
	return m, nil
}

// dragOver moves the drag over the best target under the cursor.
func (m Model) dragOver() {
	src, ok := m.drag.Source()
	if !ok {
		return
	}
	if _, _, err := m.drag.OverBest(m.dragShape(src), m.droppables(src), m.sessions(), m.zoom); err != nil {
		m.logger.Debug("drag over failed", "error", err)
	}
}

// handleDragKeys handles keys while moving or resizing a session.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	src, _ := m.drag.Source()
	switch msg.String() {
	case "esc":
		m.drag.Cancel()
		m.mode = ModeNormal
		return m, nil

	case "enter", "m", "r":
		return m.dropDrag()

	case "h", "left":
		if src.Action == dnd.ActionMove {
			m.cursor.Track--
		}
	case "l", "right":
		if src.Action == dnd.ActionMove {
			m.cursor.Track++
		}
	case "k", "up":
		m.cursor.Row--
	case "j", "down":
		m.cursor.Row++
	default:
		return m, nil
	}

	m.clampCursor()
	m.dragOver()
	return m, nil
}

// dropDrag ends the drag on the current target and dispatches the resulting mutations.
func (m Model) dropDrag() (tea.Model, tea.Cmd) {
	src, _ := m.drag.Source()
	mutations, err := m.drag.End(m.sessions())
	m.mode = ModeNormal
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	if len(mutations) == 0 {
		return m, commands.Status("Nothing changed")
	}

	verb := "Moved"
	switch {
	case src.Action == dnd.ActionResize:
		verb = "Resized"
	case len(mutations) > 1:
		verb = "Swapped"
	}
	return m, tea.Batch(m.dispatch(mutations...), commands.Status(verb+" "+src.Session.Title()))
}

// dispatch applies mutations optimistically and persists them in the background.
func (m Model) dispatch(mutations ...schedule.Mutation) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(mutations))
	for _, mutation := range mutations {
		_, req := m.dispatcher.Dispatch(mutation)
		cmds = append(cmds, commands.Persist(req))
	}
	return tea.Batch(cmds...)
}

// handleModalKeys handles keys when a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalSessionForm:
		return m.handleSessionFormKeys(msg)
	case ModalSessionDetail:
		return m.handleSessionDetailKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}
	return m.closeModal(), nil
}

func (m Model) openDetail(s schedule.Session) Model {
	md := view.SessionMarkdown(s, m.trackName(s.TrackID), m.loc)
	rendered, err := view.RenderMarkdown(md, detailWidth, m.theme.Dark())
	if err != nil {
		m.logger.Debug("rendering session details", "error", err)
		rendered = md
	}
	m.detail = rendered
	m.modalSession = &s
	m.mode = ModeModal
	m.modalType = ModalSessionDetail
	return m
}

func (m Model) openConfirmDelete(s schedule.Session) Model {
	m.modalSession = &s
	m.mode = ModeModal
	m.modalType = ModalConfirmDelete
	return m
}

func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalSession = nil
	m.form = sessionForm{}
	m.detail = ""
	return m
}

// handleSessionDetailKeys handles keys in the session detail modal.
func (m Model) handleSessionDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalSession == nil {
		return m.closeModal(), nil
	}
	s := *m.modalSession
	switch msg.String() {
	case "esc", "enter", "q":
		return m.closeModal(), nil
	case "e":
		return m.openEditSession(s)
	case "m":
		return m.closeModal().startDrag(dnd.ActionMove, s)
	case "r":
		return m.closeModal().startDrag(dnd.ActionResize, s)
	case "x", "d":
		return m.openConfirmDelete(s), nil
	}
	return m, nil
}

// handleConfirmDeleteKeys handles keys in the confirm delete modal.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		return m.closeModal(), nil

	case "enter", "y":
		if m.modalSession == nil {
			return m.closeModal(), nil
		}
		s := *m.modalSession
		m = m.closeModal()
		return m, tea.Batch(m.dispatch(schedule.DeleteSession(s.ID)), commands.Status("Deleted "+s.Title()))
	}
	return m, nil
}
