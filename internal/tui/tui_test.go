package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/mock"

	"github.com/conference-hall/hall/internal/config"
	"github.com/conference-hall/hall/internal/optimistic"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/schedule/mocks"
	"github.com/conference-hall/hall/internal/timeslot"
	"github.com/conference-hall/hall/internal/tui/commands"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 12, h, m, 0, 0, time.UTC)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Event.Name = "DevFest"
	cfg.Event.StartDate = "2025-06-12"
	cfg.Event.EndDate = "2025-06-13"
	cfg.Event.Timezone = "UTC"
	cfg.Schedule.DayStart = "09:00"
	cfg.Schedule.DayEnd = "12:00"
	cfg.UI.Zoom = 1 // 15 minute rows
	return cfg
}

func testTracks() []schedule.Track {
	return []schedule.Track{
		{ID: "t1", Name: "Room A", Position: 0},
		{ID: "t2", Name: "Room B", Position: 1},
	}
}

func keynote() schedule.Session {
	return schedule.Session{
		ID:       "s1",
		TrackID:  "t1",
		Timeslot: timeslot.Timeslot{Start: at(9, 30), End: at(10, 0)},
		Name:     "Keynote",
		Color:    schedule.ColorBlue,
		Emojis:   []string{"🎤"},
	}
}

// newTestModel returns a sized board on the first event day at 10:00, loaded
// with two tracks and a keynote on the first one.
func newTestModel(t *testing.T, repo schedule.Repository, opts ...ModelOption) Model {
	t.Helper()
	opts = append([]ModelOption{
		WithNow(func() time.Time { return at(10, 0) }),
		WithClipboard(func(string) error { return nil }),
	}, opts...)
	m := New(repo, testConfig(), opts...)
	if m.err != nil {
		t.Fatalf("New() error = %v", m.err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return update(t, m, commands.DayLoadedMsg{Day: 0, Tracks: testTracks(), Sessions: []schedule.Session{keynote()}})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

// runCmd executes cmd and any batch it returns, collecting the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findSession(t *testing.T, m Model, id string) schedule.Session {
	t.Helper()
	s, ok := schedule.FindByID(m.sessions(), id)
	if !ok {
		t.Fatalf("session %q not rendered", id)
	}
	return s
}

func TestNewOpensOnToday(t *testing.T) {
	m := New(nil, testConfig(), WithNow(func() time.Time { return at(10, 0).AddDate(0, 0, 1) }))
	if m.dayIndex != 1 {
		t.Fatalf("dayIndex = %d, want 1", m.dayIndex)
	}

	m = New(nil, testConfig(), WithNow(func() time.Time { return at(10, 0).AddDate(0, 1, 0) }))
	if m.dayIndex != 0 {
		t.Fatalf("dayIndex outside the event = %d, want 0", m.dayIndex)
	}
}

func TestNewReportsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Event.Timezone = "Mars/Olympus"
	m := New(nil, cfg)
	if m.err == nil {
		t.Fatal("expected timezone error")
	}
	msgs := runCmd(m.Init())
	if len(msgs) != 1 {
		t.Fatalf("Init messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(commands.ErrMsg); !ok {
		t.Fatalf("Init message = %T, want ErrMsg", msgs[0])
	}
}

func TestDayLoadedFocusesCurrentTime(t *testing.T) {
	m := newTestModel(t, nil)
	// 10:00 is the fifth 15 minute row after 09:00
	if m.cursor.Row != 4 {
		t.Fatalf("cursor row = %d, want 4", m.cursor.Row)
	}
	if m.loading {
		t.Fatal("still loading after DayLoadedMsg")
	}
	if len(m.tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(m.tracks))
	}
}

func TestDayLoadedIgnoresOtherDay(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, commands.DayLoadedMsg{Day: 1, Tracks: nil, Sessions: nil})
	if len(m.tracks) != 2 {
		t.Fatalf("tracks = %d, want the first day's 2", len(m.tracks))
	}
	if len(m.sessions()) != 1 {
		t.Fatalf("sessions = %d, want 1", len(m.sessions()))
	}
}

func TestCursorMovesAndClamps(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, "h")
	if m.cursor.Track != 0 {
		t.Fatalf("track = %d, want 0", m.cursor.Track)
	}
	m, _ = press(t, m, "l", "l", "l")
	if m.cursor.Track != 1 {
		t.Fatalf("track = %d, want 1", m.cursor.Track)
	}
	m, _ = press(t, m, "G")
	if m.cursor.Row != 11 {
		t.Fatalf("row = %d, want 11", m.cursor.Row)
	}
	m, _ = press(t, m, "j")
	if m.cursor.Row != 11 {
		t.Fatalf("row after last = %d, want 11", m.cursor.Row)
	}
	m, _ = press(t, m, "g")
	if m.cursor.Row != 0 {
		t.Fatalf("row = %d, want 0", m.cursor.Row)
	}
}

func TestZoomKeepsCursorTime(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "+")
	if m.zoom.Level() != 2 {
		t.Fatalf("zoom = %d, want 2", m.zoom.Level())
	}
	if got := m.rowSlot(m.cursor.Row).Start; !got.Equal(at(10, 0)) {
		t.Fatalf("cursor row starts at %s, want 10:00", got.Format("15:04"))
	}

	m, _ = press(t, m, "-", "-")
	if m.zoom.Level() != 0 {
		t.Fatalf("zoom = %d, want 0", m.zoom.Level())
	}
	if got := m.rowSlot(m.cursor.Row).Start; !got.Equal(at(10, 0)) {
		t.Fatalf("cursor row starts at %s, want 10:00", got.Format("15:04"))
	}
}

func TestSelectionOpensFormOverRange(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "l", "g", " ")
	if m.mode != ModeSelect {
		t.Fatalf("mode = %s, want select", m.mode)
	}
	m, _ = press(t, m, "j", "j", "enter")
	if m.mode != ModeModal || m.modalType != ModalSessionForm {
		t.Fatalf("mode = %s modal = %d, want session form", m.mode, m.modalType)
	}
	if got := m.form.inputs[fieldStart].Value(); got != "09:00" {
		t.Fatalf("start = %q, want 09:00", got)
	}
	if got := m.form.inputs[fieldEnd].Value(); got != "09:45" {
		t.Fatalf("end = %q, want 09:45", got)
	}
	if m.form.trackID != "t2" {
		t.Fatalf("track = %q, want t2", m.form.trackID)
	}
}

func TestSelectionStopsAtSessions(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "g", " ", "j")
	if m.cursor.Row != 1 {
		t.Fatalf("row = %d, want 1", m.cursor.Row)
	}

	// 09:30 holds the keynote
	m, _ = press(t, m, "j")
	if m.cursor.Row != 1 {
		t.Fatalf("row = %d, want the selection to stop at 1", m.cursor.Row)
	}
	if m.statusMsg == "" {
		t.Fatal("expected a status message for the rejected hover")
	}

	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.selection.State().String() != "idle" {
		t.Fatalf("mode = %s selection = %s after esc", m.mode, m.selection.State())
	}
}

func TestSelectionRejectedOnSession(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, " ")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %s, want normal", m.mode)
	}
}

func TestSubmitFormAddsSessionOptimistically(t *testing.T) {
	repo := &mocks.Repository{}
	repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(s schedule.Session) bool {
		return s.Name == "Lunch" && s.TrackID == "t2" && s.Timeslot.Start.Equal(at(10, 0))
	})).Return(nil)

	m := newTestModel(t, repo)
	m, _ = press(t, m, "l", "n", "Lunch")
	if m.modalType != ModalSessionForm {
		t.Fatalf("modal = %d, want session form", m.modalType)
	}

	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %s, want normal after submit", m.mode)
	}
	var added schedule.Session
	for _, s := range m.sessions() {
		if s.Name == "Lunch" {
			added = s
		}
	}
	if added.ID == "" {
		t.Fatal("new session not rendered")
	}
	if !m.dispatcher.Store().IsPending(added.ID) {
		t.Fatal("new session should be pending until persisted")
	}
	if !added.Timeslot.End.Equal(at(10, 15)) {
		t.Fatalf("end = %s, want 10:15", added.Timeslot.End.Format("15:04"))
	}

	var settled *commands.MutationSettledMsg
	for _, msg := range runCmd(cmd) {
		if s, ok := msg.(commands.MutationSettledMsg); ok {
			settled = &s
		}
	}
	if settled == nil {
		t.Fatal("no settlement returned")
	}
	if settled.Settlement.Err != nil {
		t.Fatalf("settlement error = %v", settled.Settlement.Err)
	}

	m = update(t, m, *settled)
	if m.dispatcher.Store().IsPending(added.ID) {
		t.Fatal("session still pending after settlement")
	}
	if _, ok := schedule.FindByID(m.dispatcher.Store().Confirmed(), added.ID); !ok {
		t.Fatal("confirmed sessions should include the new session")
	}
	repo.AssertExpectations(t)
}

func TestSubmitFormRejectsOverlap(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "g", "n")
	m.form.inputs[fieldEnd].SetValue("10:00")

	m, cmd := press(t, m, "enter")
	if m.modalType != ModalSessionForm {
		t.Fatal("form should stay open on overlap")
	}
	if !strings.Contains(m.form.err, "overlaps") {
		t.Fatalf("form error = %q, want overlap", m.form.err)
	}
	if cmd != nil {
		t.Fatal("nothing should be dispatched")
	}
	if len(m.sessions()) != 1 {
		t.Fatalf("sessions = %d, want 1", len(m.sessions()))
	}
}

func TestSubmitFormRejectsMisalignedTimes(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "l", "n")
	m.form.inputs[fieldStart].SetValue("1002")

	m, _ = press(t, m, "enter")
	if m.modalType != ModalSessionForm {
		t.Fatal("form should stay open on misaligned times")
	}
	if !strings.Contains(m.form.err, "multiples of 5 minutes") {
		t.Fatalf("form error = %q, want alignment error", m.form.err)
	}
}

func TestEditFormUpdatesSession(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, "e")
	if m.form.editing == nil {
		t.Fatal("expected an edit form")
	}
	if got := m.form.inputs[fieldName].Value(); got != "Keynote" {
		t.Fatalf("name = %q, want Keynote", got)
	}

	// Color is the last field
	m, _ = press(t, m, "tab", "tab", "tab", "tab", "tab")
	if m.form.focus != fieldColor {
		t.Fatalf("focus = %d, want color", m.form.focus)
	}
	m, _ = press(t, m, "right", "enter")

	s := findSession(t, m, "s1")
	if s.Color != schedule.ColorGreen {
		t.Fatalf("color = %s, want green", s.Color)
	}
	if !m.dispatcher.Store().IsPending("s1") {
		t.Fatal("edit should be pending")
	}
}

func TestDragMoveToOtherTrack(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 3}
	m, _ = press(t, m, "m")
	if m.mode != ModeDrag {
		t.Fatalf("mode = %s, want drag", m.mode)
	}
	if m.cursor.Row != 2 {
		t.Fatalf("move grabs the top of the block, row = %d, want 2", m.cursor.Row)
	}

	m, _ = press(t, m, "l")
	p, _ := m.drag.Preview()
	if !p.Accepted || p.Session.TrackID != "t2" {
		t.Fatalf("preview = %+v, want accepted on t2", p)
	}

	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %s, want normal", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected persist command")
	}
	s := findSession(t, m, "s1")
	if s.TrackID != "t2" || !s.Timeslot.Start.Equal(at(9, 30)) || !s.Timeslot.End.Equal(at(10, 0)) {
		t.Fatalf("moved session = %s on %s", s.Timeslot, s.TrackID)
	}
}

func TestDragResizeExtendsSession(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, "r")
	if m.cursor.Row != 3 {
		t.Fatalf("resize grabs the bottom of the block, row = %d, want 3", m.cursor.Row)
	}

	m, _ = press(t, m, "l", "j", "enter")
	s := findSession(t, m, "s1")
	if s.TrackID != "t1" {
		t.Fatalf("resize changed track to %s", s.TrackID)
	}
	if !s.Timeslot.End.Equal(at(10, 15)) {
		t.Fatalf("end = %s, want 10:15", s.Timeslot.End.Format("15:04"))
	}
}

func TestDragEscCancels(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, "m", "l", "esc")
	if m.mode != ModeNormal || m.drag.Dragging() {
		t.Fatal("drag should be cancelled")
	}
	if s := findSession(t, m, "s1"); s.TrackID != "t1" {
		t.Fatalf("track = %s, want t1", s.TrackID)
	}
	if len(m.dispatcher.Store().Pending()) != 0 {
		t.Fatal("cancelled drag should not dispatch")
	}
}

func TestDragWithoutChangeReportsNothing(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, cmd := press(t, m, "m", "enter")
	if len(m.dispatcher.Store().Pending()) != 0 {
		t.Fatal("dropping in place should not dispatch")
	}
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if st, ok := msgs[0].(commands.StatusMsgCmd); !ok || st.Msg != "Nothing changed" {
		t.Fatalf("message = %#v, want Nothing changed", msgs[0])
	}
}

func TestDragInPlaceKeepsUnalignedSession(t *testing.T) {
	m := newTestModel(t, nil)
	offGrid := keynote()
	offGrid.Timeslot = timeslot.Timeslot{Start: at(9, 35), End: at(9, 50)}
	m = update(t, m, commands.DayLoadedMsg{Day: 0, Tracks: testTracks(), Sessions: []schedule.Session{offGrid}})

	for _, key := range []string{"m", "r"} {
		m.cursor = Position{Track: 0, Row: 2}
		var cmd tea.Cmd
		m, cmd = press(t, m, key, "enter")
		if n := len(m.dispatcher.Store().Pending()); n != 0 {
			t.Fatalf("%s: pending = %d, want 0", key, n)
		}
		got := findSession(t, m, "s1")
		if !got.Timeslot.Equal(offGrid.Timeslot) {
			t.Fatalf("%s: session at %s, want 09:35-09:50", key, got.Timeslot)
		}
		msgs := runCmd(cmd)
		if len(msgs) != 1 {
			t.Fatalf("%s: messages = %d, want 1", key, len(msgs))
		}
		if st, ok := msgs[0].(commands.StatusMsgCmd); !ok || st.Msg != "Nothing changed" {
			t.Fatalf("%s: message = %#v, want Nothing changed", key, msgs[0])
		}
	}
}

func TestDragMoveFromUnalignedSessionSnapsToRow(t *testing.T) {
	m := newTestModel(t, nil)
	offGrid := keynote()
	offGrid.Timeslot = timeslot.Timeslot{Start: at(9, 35), End: at(9, 50)}
	m = update(t, m, commands.DayLoadedMsg{Day: 0, Tracks: testTracks(), Sessions: []schedule.Session{offGrid}})

	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, "m", "j", "enter")
	got := findSession(t, m, "s1")
	want := timeslot.Timeslot{Start: at(9, 45), End: at(10, 0)}
	if !got.Timeslot.Equal(want) {
		t.Fatalf("session at %s, want 09:45-10:00", got.Timeslot)
	}
}

func TestDeleteAfterConfirmation(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}

	m, _ = press(t, m, "x")
	if m.modalType != ModalConfirmDelete {
		t.Fatalf("modal = %d, want confirm delete", m.modalType)
	}
	m, _ = press(t, m, "n")
	if m.mode != ModeNormal || len(m.sessions()) != 1 {
		t.Fatal("n should cancel the deletion")
	}

	m, _ = press(t, m, "x", "y")
	if len(m.sessions()) != 0 {
		t.Fatalf("sessions = %d, want 0", len(m.sessions()))
	}
	if !m.dispatcher.Store().IsPending("s1") {
		t.Fatal("delete should be pending")
	}
}

func TestEnterOpensDetails(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, "enter")
	if m.modalType != ModalSessionDetail {
		t.Fatalf("modal = %d, want detail", m.modalType)
	}
	if !strings.Contains(ansi.Strip(m.detail), "Keynote") {
		t.Fatalf("detail = %q, want the session title", ansi.Strip(m.detail))
	}

	m, _ = press(t, m, "e")
	if m.modalType != ModalSessionForm || m.form.editing == nil {
		t.Fatal("e should open the edit form")
	}
	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %s, want normal", m.mode)
	}
}

func TestRejectedSettlementRevertsSession(t *testing.T) {
	m := newTestModel(t, nil)
	moved := keynote()
	moved.TrackID = "t2"
	ticket, _ := m.dispatcher.Dispatch(schedule.UpdateSession(moved))

	if s := findSession(t, m, "s1"); s.TrackID != "t2" {
		t.Fatalf("optimistic track = %s, want t2", s.TrackID)
	}

	m = update(t, m, commands.MutationSettledMsg{Settlement: optimistic.Settlement{
		Ticket:   ticket,
		Mutation: schedule.UpdateSession(moved),
		Err:      errors.New("disk full"),
	}})
	if s := findSession(t, m, "s1"); s.TrackID != "t1" {
		t.Fatalf("track after rejection = %s, want t1", s.TrackID)
	}
	if !strings.HasPrefix(m.statusMsg, "Error") {
		t.Fatalf("status = %q, want an error", m.statusMsg)
	}
}

func TestCopyAgenda(t *testing.T) {
	var copied string
	m := newTestModel(t, nil, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	_, cmd := press(t, m, "y")
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(commands.CopiedMsg); !ok {
		t.Fatalf("message = %T, want CopiedMsg", msgs[0])
	}
	for _, want := range []string{"# DevFest", "## Room A", "09:30-10:00 🎤 Keynote", "## Room B"} {
		if !strings.Contains(copied, want) {
			t.Errorf("agenda missing %q:\n%s", want, copied)
		}
	}
}

func TestSwitchDay(t *testing.T) {
	repo := &mocks.Repository{}
	m := newTestModel(t, repo)

	m, cmd := press(t, m, "]")
	if m.dayIndex != 1 {
		t.Fatalf("dayIndex = %d, want 1", m.dayIndex)
	}
	if cmd == nil {
		t.Fatal("switching day should load it")
	}

	m, cmd = press(t, m, "]")
	if m.dayIndex != 1 || cmd != nil {
		t.Fatal("cannot go past the last day")
	}

	m, _ = press(t, m, "[")
	if m.dayIndex != 0 {
		t.Fatalf("dayIndex = %d, want 0", m.dayIndex)
	}
}

func TestStatusClears(t *testing.T) {
	now := at(10, 0)
	m := newTestModel(t, nil, WithNow(func() time.Time { return now }))
	m = update(t, m, commands.StatusMsgCmd{Msg: "Saved"})
	if m.statusMsg != "Saved" {
		t.Fatalf("status = %q, want Saved", m.statusMsg)
	}

	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "Saved" {
		t.Fatal("status cleared too early")
	}

	now = now.Add(statusDuration)
	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Fatalf("status = %q, want cleared", m.statusMsg)
	}
}

func TestViewRendersGrid(t *testing.T) {
	m := newTestModel(t, nil)
	out := ansi.Strip(m.View())
	for _, want := range []string{"DevFest", "Room A", "Room B", "09:00", "Keynote"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewShadesPendingSessions(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	m := newTestModel(t, nil)
	confirmed := m.View()
	if !strings.Contains(confirmed, "\x1b[") {
		t.Fatal("expected colored output")
	}

	// Same placement, only the pending state changes
	m.dispatcher.Dispatch(schedule.UpdateSession(keynote()))
	pending := m.View()
	if pending == confirmed {
		t.Fatal("pending session should render with a different shade")
	}
	if !strings.Contains(ansi.Strip(pending), "1 saving") {
		t.Fatal("stats line should count the pending mutation")
	}
}

func TestViewEmptyBoard(t *testing.T) {
	m := New(nil, testConfig(), WithNow(func() time.Time { return at(10, 0) }))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, commands.DayLoadedMsg{Day: 0})
	if !strings.Contains(ansi.Strip(m.View()), "No tracks yet") {
		t.Fatal("empty board should explain how to add a track")
	}
}

func TestViewShowsModal(t *testing.T) {
	m := newTestModel(t, nil)
	m.cursor = Position{Track: 0, Row: 2}
	m, _ = press(t, m, "x")
	if !strings.Contains(ansi.Strip(m.View()), "Delete session?") {
		t.Fatal("view should show the confirmation modal")
	}
}

func TestAltShadesBackToBackBlocks(t *testing.T) {
	a := keynote()
	b := keynote()
	b.ID = "s2"
	b.Timeslot = timeslot.Timeslot{Start: at(10, 0), End: at(10, 30)}
	c := keynote()
	c.ID = "s3"
	c.Timeslot = timeslot.Timeslot{Start: at(10, 30), End: at(11, 0)}

	alt := altShades(testTracks(), []schedule.Session{a, b, c})
	if alt["s1"] || !alt["s2"] || alt["s3"] {
		t.Fatalf("alt = %v, want only s2 shaded", alt)
	}
}
