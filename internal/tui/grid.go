package tui

import (
	"time"

	"github.com/conference-hall/hall/internal/dnd"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
	"github.com/conference-hall/hall/internal/zoom"
)

// Screen lines around the grid: title above, footer below, and the table's
// top border, header, header separator and bottom border.
const (
	titleH         = 1
	footerH        = 3
	gridChromeRows = 4
	minColWidth    = 8
)

func (m Model) currentDay() (schedule.Day, bool) {
	if m.dayIndex < 0 || m.dayIndex >= len(m.days) {
		return schedule.Day{}, false
	}
	return m.days[m.dayIndex], true
}

// sessions returns the rendered list: confirmed sessions with pending mutations applied.
func (m Model) sessions() []schedule.Session {
	return m.dispatcher.Store().Sessions()
}

func (m Model) slotsPerRow() int {
	return zoom.SlotsPerRow(m.zoom.Level())
}

// rowCount returns the number of grid rows of the current day at the current zoom.
func (m Model) rowCount() int {
	day, ok := m.currentDay()
	if !ok {
		return 0
	}
	spr := m.slotsPerRow()
	return (day.Slots() + spr - 1) / spr
}

// rowSlot returns the time range covered by row. The last row may be shorter.
func (m Model) rowSlot(row int) timeslot.Timeslot {
	day, _ := m.currentDay()
	spr := m.slotsPerRow()
	first := row * spr
	count := min(spr, day.Slots()-first)
	return day.Range(first, max(1, count))
}

// rowOf returns the row containing t, clamped to the grid.
func (m Model) rowOf(t time.Time) int {
	day, ok := m.currentDay()
	if !ok {
		return 0
	}
	return day.SlotIndex(t) / m.slotsPerRow()
}

// blockRows returns the first and last row a timeslot covers.
func (m Model) blockRows(ts timeslot.Timeslot) (int, int) {
	first := m.rowOf(ts.Start)
	last := m.rowOf(ts.End.Add(-time.Nanosecond))
	return first, max(first, last)
}

func (m Model) trackID(i int) string {
	if i < 0 || i >= len(m.tracks) {
		return ""
	}
	return m.tracks[i].ID
}

func (m Model) trackIndex(id string) int {
	for i, tr := range m.tracks {
		if tr.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) trackName(id string) string {
	if i := m.trackIndex(id); i >= 0 {
		return m.tracks[i].Name
	}
	return ""
}

// cellSessions returns the sessions of a track overlapping row, sorted by start.
func cellSessions(sessions []schedule.Session, trackID string, slot timeslot.Timeslot) []schedule.Session {
	var out []schedule.Session
	for _, s := range schedule.OnTrack(sessions, trackID) {
		if timeslot.Overlaps(s.Timeslot, slot) {
			out = append(out, s)
		}
	}
	return out
}

// cursorSession returns the first session under the cursor.
func (m Model) cursorSession() (schedule.Session, bool) {
	found := cellSessions(m.sessions(), m.trackID(m.cursor.Track), m.rowSlot(m.cursor.Row))
	if len(found) == 0 {
		return schedule.Session{}, false
	}
	return found[0], true
}

func (m Model) visibleRows() int {
	return max(1, m.height-titleH-footerH-gridChromeRows)
}

func (m Model) colWidth() int {
	if len(m.tracks) == 0 {
		return defaultColWidth
	}
	// One border per column plus the outer right border.
	avail := m.width - timeColWidth - len(m.tracks) - 2
	return max(minColWidth, avail/len(m.tracks))
}

// clampCursor keeps the cursor on the grid and scrolls it into view.
func (m *Model) clampCursor() {
	m.cursor.Track = max(0, min(m.cursor.Track, len(m.tracks)-1))
	m.cursor.Row = max(0, min(m.cursor.Row, m.rowCount()-1))

	visible := m.visibleRows()
	if m.cursor.Row < m.scroll {
		m.scroll = m.cursor.Row
	}
	if m.cursor.Row >= m.scroll+visible {
		m.scroll = m.cursor.Row - visible + 1
	}
	m.scroll = max(0, min(m.scroll, m.rowCount()-visible))
}

// focusNow puts the cursor on the current time when it falls inside the day window.
func (m *Model) focusNow() {
	day, ok := m.currentDay()
	if !ok {
		return
	}
	now := m.now().In(m.loc)
	if !now.Before(day.Window.Start) && now.Before(day.Window.End) {
		m.cursor.Row = m.rowOf(now)
	}
}

// droppables returns the drop candidates under the cursor: the cell itself and,
// when another session sits there, that session's block.
func (m Model) droppables(src dnd.Source) []dnd.Droppable {
	dragged := src.Session.ID
	track := m.cursor.Track
	row := m.cursor.Row
	trackID := m.trackID(track)
	slot := m.rowSlot(row)

	candidates := []dnd.Droppable{{
		Target: dnd.TimeslotTarget(trackID, dropSlot(src, trackID, slot)),
		Rect:   dnd.Rect{X: float64(track), Y: float64(row), W: 1, H: 1},
	}}
	for _, s := range cellSessions(m.sessions(), trackID, slot) {
		if s.ID == dragged {
			continue
		}
		first, last := m.blockRows(s.Timeslot)
		candidates = append(candidates, dnd.Droppable{
			Target: dnd.SessionTarget(s),
			Rect:   dnd.Rect{X: float64(track), Y: float64(first), W: 1, H: float64(last - first + 1)},
		})
	}
	return candidates
}

// dropSlot narrows a row to the dragged session's own edge when the row holds it,
// so rows wider than the slot interval keep a move's start minute and a resize's
// end minute until the cursor leaves that row.
func dropSlot(src dnd.Source, trackID string, row timeslot.Timeslot) timeslot.Timeslot {
	ts := src.Session.Timeslot
	switch src.Action {
	case dnd.ActionMove:
		if !ts.Start.Before(row.Start) && ts.Start.Before(row.End) {
			return timeslot.Timeslot{Start: ts.Start, End: row.End}
		}
	case dnd.ActionResize:
		if trackID == src.Session.TrackID && ts.End.After(row.Start) && !ts.End.After(row.End) {
			return timeslot.Timeslot{Start: row.Start, End: ts.End}
		}
	}
	return row
}

// dragShape is the dragged block placed at the cursor.
func (m Model) dragShape(src dnd.Source) dnd.Rect {
	rows := 1
	if src.Action == dnd.ActionMove {
		first, last := m.blockRows(src.Session.Timeslot)
		rows = last - first + 1
	}
	return dnd.Rect{X: float64(m.cursor.Track), Y: float64(m.cursor.Row), W: 1, H: float64(rows)}
}
