package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/dnd"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
	"github.com/conference-hall/hall/internal/tui/view"
)

const emptyBoardText = "No tracks yet. Add one with 'hall track add NAME'."

// View renders the board.
func (m Model) View() string {
	state := view.ViewState{
		Width:     m.width,
		Height:    m.height,
		ShowModal: m.mode == ModeModal,
		ModalBg:   m.styles.ModalBgColor,
	}
	if m.width == 0 || m.height == 0 {
		return view.Render(state)
	}
	state.BaseContent = m.renderBoard()
	if state.ShowModal {
		state.ModalContent = m.renderModal()
	}
	return view.Render(state)
}

func (m Model) renderBoard() string {
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	gridH := max(0, m.height-titleH-footerH)
	switch {
	case m.loading && len(m.tracks) == 0:
		b.WriteString(view.PlaceBox(m.width, gridH, lipgloss.Center, m.styles.HelpStyle.Render("Loading..."), m.styles.colorBg))
	case len(m.tracks) == 0:
		b.WriteString(view.PlaceBox(m.width, gridH, lipgloss.Center, m.styles.HelpStyle.Render(emptyBoardText), m.styles.colorBg))
	default:
		b.WriteString(m.renderGrid(gridH))
	}
	b.WriteString("\n")

	b.WriteString(view.RenderFooter(view.FooterViewState{
		InnerW:      m.width,
		FooterH:     footerH,
		StatsLine:   m.styles.StatsBarStyle.Width(m.width).Render(m.statsLine()),
		StatusText:  m.statusMsg,
		HelpText:    m.helpText(),
		StatusStyle: m.statusStyle(),
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	}))
	return m.styles.AppStyle.Render(b.String())
}

func (m Model) renderTitle() string {
	title := m.config.Event.Name
	if day, ok := m.currentDay(); ok {
		title = view.TitleLine(m.config.Event.Name, m.dayIndex, len(m.days), day)
	}
	return m.styles.TitleStyle.Width(m.width).Render(ansi.Truncate(title, max(1, m.width), "…"))
}

func (m Model) statusStyle() lipgloss.Style {
	if strings.HasPrefix(m.statusMsg, "Error") {
		return m.styles.ErrorStyle
	}
	return m.styles.StatusStyle
}

func (m Model) statsLine() string {
	sessions := m.sessions()
	minutes := 0
	for _, s := range sessions {
		minutes += s.Timeslot.Minutes()
	}
	line := fmt.Sprintf("%d sessions · %s scheduled · %d tracks · %dm rows",
		len(sessions), dateutil.FormatDuration(minutes), len(m.tracks), m.zoom.RowMinutes())
	if n := len(m.dispatcher.Store().Pending()); n > 0 {
		line += fmt.Sprintf(" · %d saving", n)
	}
	return line
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeSelect:
		return "j/k extend · enter create · esc cancel"
	case ModeDrag:
		if src, ok := m.drag.Source(); ok && src.Action == dnd.ActionResize {
			return "j/k resize · enter drop · esc cancel"
		}
		return "hjkl move · enter drop · esc cancel"
	case ModeModal:
		return ""
	default:
		return "hjkl move · space select · enter open · n new · e edit · m move · r resize · x delete · [/] day · +/- zoom · y copy · q quit"
	}
}

// renderGrid renders the visible rows: one time column then one column per track.
func (m Model) renderGrid(gridH int) string {
	colW := m.colWidth()
	sessions := m.sessions()
	alt := altShades(m.tracks, sessions)

	headers := view.HeaderLabels(m.tracks, colW)
	headerStyles := make([]lipgloss.Style, len(headers))
	headerStyles[0] = m.styles.TimeColumnStyle
	for i := 1; i < len(headers); i++ {
		headerStyles[i] = m.styles.TrackHeaderStyle.Width(colW)
	}

	end := min(m.rowCount(), m.scroll+m.visibleRows())
	content := view.GridContent{
		Rows:       make([][]string, 0, end-m.scroll),
		CellStyles: make([][]lipgloss.Style, 0, end-m.scroll),
	}
	for row := m.scroll; row < end; row++ {
		slot := m.rowSlot(row)
		start := slot.Start.In(m.loc)

		cells := make([]string, 0, len(m.tracks)+1)
		styles := make([]lipgloss.Style, 0, len(m.tracks)+1)

		timeStyle := m.styles.TimeColumnStyle
		if start.Minute() == 0 {
			timeStyle = m.styles.HourColumnStyle
		}
		cells = append(cells, start.Format("15:04"))
		styles = append(styles, timeStyle)

		for track := range m.tracks {
			text, style := m.renderCell(track, row, slot, sessions, alt)
			cells = append(cells, ansi.Truncate(text, max(1, colW-1), "…"))
			styles = append(styles, style.Width(colW))
		}
		content.Rows = append(content.Rows, cells)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return view.RenderGrid(view.GridViewState{
		InnerW:       m.width,
		GridH:        gridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.colorBg,
		Render:       true,
	})
}

// renderCell returns the text and style of one grid cell.
// Drag previews draw over selections, which draw over session blocks.
func (m Model) renderCell(track, row int, slot timeslot.Timeslot, sessions []schedule.Session, alt map[string]bool) (string, lipgloss.Style) {
	trackID := m.trackID(track)
	isCursor := m.mode != ModeModal && track == m.cursor.Track && row == m.cursor.Row

	if p, ok := m.drag.Preview(); ok {
		if isCursor && !p.Accepted {
			return "✕", m.styles.RejectStyle
		}
		if p.Accepted && p.Session.TrackID == trackID && timeslot.Overlaps(p.Session.Timeslot, slot) {
			return m.blockText(p.Session, row, 0), m.styles.DropStyle
		}
	}

	if r, ok := m.selection.Range(); ok && m.selection.TrackID() == trackID && timeslot.Overlaps(r, slot) {
		text := ""
		if row == m.rowOf(r.Start) {
			text = r.In(m.loc).String()
		}
		return text, m.styles.SelectionStyle
	}

	found := cellSessions(sessions, trackID, slot)
	if len(found) == 0 {
		if isCursor {
			return "▸", m.styles.CursorStyle
		}
		return "", m.styles.EmptyCellStyle
	}

	s := found[0]
	pending := m.dispatcher.Store().IsPending(s.ID)
	if src, ok := m.drag.Source(); ok && src.Session.ID == s.ID {
		pending = true
	}
	style := m.styles.Session(s.Color, alt[s.ID], pending)
	if isCursor {
		style = style.Reverse(true)
	}
	return m.blockText(s, row, len(found)-1), style
}

// blockText labels the first two rows of a session block: emojis and title,
// then the time range and language.
func (m Model) blockText(s schedule.Session, row, more int) string {
	first, _ := m.blockRows(s.Timeslot)
	switch row {
	case first:
		label := s.Title()
		if len(s.Emojis) > 0 {
			label = strings.Join(s.Emojis, "") + " " + label
		}
		if more > 0 {
			label += fmt.Sprintf(" +%d", more)
		}
		return label
	case first + 1:
		label := s.Timeslot.In(m.loc).String()
		if s.Language != "" {
			label += " " + s.Language
		}
		return label
	default:
		return ""
	}
}

// altShades marks back-to-back blocks of the same color on a track so they
// alternate shades and stay distinguishable.
func altShades(tracks []schedule.Track, sessions []schedule.Session) map[string]bool {
	alt := make(map[string]bool, len(sessions))
	for _, tr := range tracks {
		var prev *schedule.Session
		for _, s := range schedule.OnTrack(sessions, tr.ID) {
			if prev != nil && prev.Color == s.Color && prev.Timeslot.End.Equal(s.Timeslot.Start) {
				alt[s.ID] = !alt[prev.ID]
			}
			prev = &s
		}
	}
	return alt
}

func (m Model) renderModal() string {
	styles := m.styles.modalStyles()
	switch m.modalType {
	case ModalSessionForm:
		title := "New session"
		if m.form.editing != nil {
			title = "Edit session"
		}
		return view.RenderModalFrame(title, m.renderSessionForm(), view.SessionFormFooter(styles), styles)

	case ModalSessionDetail:
		if m.modalSession == nil {
			return ""
		}
		body := m.styles.ModalBodyStyle.Render(strings.TrimRight(m.detail, "\n"))
		return view.RenderModalFrame(m.modalSession.Title(), body, view.SessionDetailFooter(styles), styles)

	case ModalConfirmDelete:
		if m.modalSession == nil {
			return ""
		}
		s := *m.modalSession
		ts := s.Timeslot.In(m.loc)
		body := view.RenderConfirmDeleteBody(view.ConfirmDeleteModel{
			Title:     s.Title(),
			Track:     m.trackName(s.TrackID),
			TimeRange: ts.String(),
			DateLabel: ts.Start.Format("Mon Jan 2"),
		}, view.ConfirmDeleteStyles{
			BodyStyle: m.styles.ModalBodyStyle,
			MetaStyle: m.styles.ModalMetaStyle,
		})
		return view.RenderModalFrame("Delete session?", body, view.ConfirmDeleteFooter(styles), styles)
	}
	return ""
}

func (m Model) renderSessionForm() string {
	f := m.form
	fields := make([]view.FormField, 0, fieldCount)
	for i := range fieldCount {
		focused := f.focus == i
		inputStyle := m.styles.ModalInputStyle
		if focused {
			inputStyle = m.styles.ModalInputFocusedStyle
		}

		var value string
		if i == fieldColor {
			value = inputStyle.Render(m.renderColorPicker(focused))
		} else {
			value = inputStyle.Render(f.inputs[i].View())
		}
		fields = append(fields, view.FormField{Label: fieldLabels[i], Value: value, Focused: focused})
	}

	day := ""
	if d, ok := m.currentDay(); ok {
		day = d.Date.Format("Mon Jan 2")
	}
	return view.RenderSessionFormBody(view.SessionFormModel{
		Track:    m.trackName(f.trackID),
		DayLabel: day,
		Duration: f.duration(),
		Fields:   fields,
		Error:    f.err,
	}, view.SessionFormStyles{
		TagStyle:   m.styles.ModalTagStyle,
		BodyStyle:  m.styles.ModalBodyStyle,
		LabelStyle: m.styles.ModalLabelStyle,
		FocusStyle: m.styles.ModalLabelStyle.Foreground(m.styles.colorAccent),
		ErrorStyle: m.styles.ModalErrorStyle,
		HintStyle:  m.styles.ModalHintStyle,
	})
}

func (m Model) renderColorPicker(focused bool) string {
	c := m.form.selectedColor()
	swatch := m.styles.Swatch(c).Render("■ " + string(c))
	if focused {
		return "‹ " + swatch + " ›"
	}
	return swatch
}
