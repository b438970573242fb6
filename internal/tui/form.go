package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
	"github.com/conference-hall/hall/internal/tui/commands"
	"github.com/conference-hall/hall/internal/tui/input"
)

// Form fields in focus order. The text inputs come first, the color selector last.
const (
	fieldName = iota
	fieldLanguage
	fieldStart
	fieldEnd
	fieldEmojis
	fieldColor
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Language", "Start", "End", "Emojis", "Color"}

// sessionForm holds the state of the create/edit session modal.
type sessionForm struct {
	editing *schedule.Session // nil when creating
	trackID string
	date    time.Time // Midnight of the day the session is on

	inputs [fieldColor]textinput.Model
	color  int // index into schedule.Colors
	focus  int
	err    string
}

func newTextInput(styles *Styles, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = styles.ModalInputTextStyle
	return ti
}

// newSessionForm prepares the form for a new session on trackID over ts, or for
// editing s when it is not nil.
func newSessionForm(styles *Styles, day schedule.Day, trackID string, ts timeslot.Timeslot, s *schedule.Session) sessionForm {
	f := sessionForm{trackID: trackID, date: day.Date}
	f.inputs[fieldName] = newTextInput(styles, "Session name", 256)
	f.inputs[fieldLanguage] = newTextInput(styles, "en, fr...", 16)
	f.inputs[fieldStart] = newTextInput(styles, "HH:MM", 5)
	f.inputs[fieldEnd] = newTextInput(styles, "HH:MM", 5)
	f.inputs[fieldEmojis] = newTextInput(styles, "🎤 ☕", 64)

	loc := day.Date.Location()
	if s != nil {
		c := s.Clone()
		f.editing = &c
		f.trackID = c.TrackID
		ts = c.Timeslot
		f.inputs[fieldName].SetValue(c.Name)
		f.inputs[fieldLanguage].SetValue(c.Language)
		f.inputs[fieldEmojis].SetValue(input.FormatEmojis(c.Emojis))
		f.color = max(0, slices.Index(schedule.Colors(), c.Color))
	}
	f.inputs[fieldStart].SetValue(ts.Start.In(loc).Format("15:04"))
	f.inputs[fieldEnd].SetValue(ts.End.In(loc).Format("15:04"))
	f.focusField(fieldName)
	return f
}

func (f *sessionForm) focusField(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *sessionForm) cycleColor(delta int) {
	n := len(schedule.Colors())
	f.color = (f.color + delta + n) % n
}

func (f sessionForm) selectedColor() schedule.Color {
	return schedule.Colors()[f.color]
}

// update forwards msg to the focused text input.
func (f sessionForm) update(msg tea.Msg) (sessionForm, tea.Cmd) {
	if f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// timeslot parses the start and end inputs on the form's day.
func (f sessionForm) timeslot() (timeslot.Timeslot, error) {
	start := input.NormalizeClock(f.inputs[fieldStart].Value())
	end := input.NormalizeClock(f.inputs[fieldEnd].Value())
	ts, err := timeslot.Between(f.date, start, end)
	if err != nil {
		return timeslot.Timeslot{}, err
	}
	if err := planner.CheckAligned(f.date, ts.Start, ts.End); err != nil {
		return timeslot.Timeslot{}, err
	}
	return ts, nil
}

// session builds the session the form describes.
func (f sessionForm) session() (schedule.Session, error) {
	ts, err := f.timeslot()
	if err != nil {
		return schedule.Session{}, err
	}

	var s schedule.Session
	if f.editing != nil {
		s = f.editing.Clone()
	} else {
		s = schedule.Session{ID: uuid.NewString(), TrackID: f.trackID}
	}
	s.Timeslot = ts
	s.Name = strings.TrimSpace(f.inputs[fieldName].Value())
	s.Language = strings.TrimSpace(f.inputs[fieldLanguage].Value())
	s.Emojis = input.ParseEmojis(f.inputs[fieldEmojis].Value())
	s.Color = f.selectedColor()
	return s, nil
}

// duration renders the length of the entered range, or "" while it is invalid.
func (f sessionForm) duration() string {
	start := input.NormalizeClock(f.inputs[fieldStart].Value())
	end := input.NormalizeClock(f.inputs[fieldEnd].Value())
	ts, err := timeslot.Between(f.date, start, end)
	if err != nil {
		return ""
	}
	return dateutil.FormatDuration(ts.Minutes())
}

// openNewSession opens the form for a new session over ts on the cursor track.
func (m Model) openNewSession(ts timeslot.Timeslot) (tea.Model, tea.Cmd) {
	day, ok := m.currentDay()
	if !ok || len(m.tracks) == 0 {
		m.statusMsg = "Add a track first"
		return m, nil
	}
	m.form = newSessionForm(m.styles, day, m.trackID(m.cursor.Track), ts, nil)
	m.modalSession = nil
	m.mode = ModeModal
	m.modalType = ModalSessionForm
	return m, textinput.Blink
}

// openEditSession opens the form on an existing session.
func (m Model) openEditSession(s schedule.Session) (tea.Model, tea.Cmd) {
	day, ok := m.currentDay()
	if !ok {
		return m, nil
	}
	m.form = newSessionForm(m.styles, day, s.TrackID, s.Timeslot, &s)
	m.modalSession = &s
	m.mode = ModeModal
	m.modalType = ModalSessionForm
	return m, textinput.Blink
}

// handleSessionFormKeys handles keys in the session form modal.
func (m Model) handleSessionFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil

	case "tab", "down":
		m.form.focusField(m.form.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.form.focusField(m.form.focus - 1)
		return m, nil

	case "enter":
		return m.submitSessionForm()

	case "left", "right":
		if m.form.focus == fieldColor {
			if msg.String() == "left" {
				m.form.cycleColor(-1)
			} else {
				m.form.cycleColor(1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	m.form.err = ""
	return m, cmd
}

// submitSessionForm validates the form and dispatches the add or update.
// Invalid input keeps the form open with the error shown.
func (m Model) submitSessionForm() (tea.Model, tea.Cmd) {
	s, err := m.form.session()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	if err := schedule.CheckAvailable(s, m.sessions()); err != nil {
		m.form.err = err.Error()
		return m, nil
	}

	mutation := schedule.AddSession(s)
	status := "Added " + s.Title()
	if m.form.editing != nil {
		mutation = schedule.UpdateSession(s)
		status = "Updated " + s.Title()
	}

	m = m.closeModal()
	return m, tea.Batch(m.dispatch(mutation), commands.Status(status))
}
