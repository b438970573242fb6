package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/conference-hall/hall/internal/config"
	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/dnd"
	"github.com/conference-hall/hall/internal/logging"
	"github.com/conference-hall/hall/internal/optimistic"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/selection"
	"github.com/conference-hall/hall/internal/tui/commands"
	"github.com/conference-hall/hall/internal/tui/theme"
	"github.com/conference-hall/hall/internal/zoom"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSelect      // Extending the range of a new session
	ModeDrag        // Moving or resizing a session
	ModeModal
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeDrag:
		return "drag"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalSessionForm
	ModalSessionDetail
	ModalConfirmDelete
)

// Position represents a cursor position in the grid.
type Position struct {
	Track int // Column index into the tracks
	Row   int // Row index, each row covers zoom.RowMinutes
}

// Model is the main board model.
type Model struct {
	// Dependencies
	repo   schedule.Repository
	config *config.Config
	logger *slog.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Event
	days     []schedule.Day
	dayIndex int
	loc      *time.Location
	tracks   []schedule.Track

	// Engine state, shared by every copy of the model
	dispatcher *optimistic.Dispatcher
	selection  *selection.Machine
	drag       *dnd.Coordinator
	zoom       zoom.Zoom

	// State
	cursor  Position
	scroll  int // First visible row
	mode    Mode
	loading bool
	focused bool // Cursor was placed after the first load

	// Modal state
	modalType    ModalType
	modalSession *schedule.Session // Session being viewed, edited or deleted
	form         sessionForm
	detail       string // Rendered session details

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error

	now       func() time.Time
	clipboard func(string) error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used for key and mutation logging.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNow overrides the clock, used to open the board on today's event day.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithClipboard overrides the clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.clipboard = write
	}
}

// New creates a board over repo for the event days of cfg.
func New(repo schedule.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		repo:      repo,
		config:    cfg,
		logger:    logging.Discard(),
		selection: &selection.Machine{},
		zoom:      zoom.New(cfg.UI.Zoom),
		mode:      ModeNormal,
		loading:   true,
		now:       time.Now,
		clipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		m.logger.Warn("loading theme", "theme", cfg.UI.Theme, "error", err)
	}
	if t == nil {
		t = &theme.Theme{Name: theme.DefaultName}
	}
	m.theme = t
	m.styles = NewStyles(t)

	logger := m.logger
	m.dispatcher = optimistic.NewDispatcher(repo, optimistic.New(nil), logger)
	m.drag = dnd.NewCoordinator(dnd.TopCenter{}, dnd.Callbacks{
		OnStart: func(src dnd.Source) {
			logger.Debug("drag started", "action", src.Action.String(), "session", src.Session.ID)
		},
		OnEnd: func(src dnd.Source, mutations []schedule.Mutation) {
			logger.Debug("drag ended", "action", src.Action.String(), "session", src.Session.ID, "mutations", len(mutations))
		},
	})

	if err := m.loadDays(); err != nil {
		m.err = err
		m.loading = false
	}
	return m
}

// loadDays resolves the event days and opens the board on today when it is one.
func (m *Model) loadDays() error {
	loc, err := m.config.Location()
	if err != nil {
		m.loc = time.UTC
		return err
	}
	m.loc = loc

	dates, err := m.config.Days()
	if err != nil {
		return err
	}
	days, err := schedule.NewDays(dates, loc, m.config.Schedule.DayStart, m.config.Schedule.DayEnd)
	if err != nil {
		return err
	}
	m.days = days
	if i, err := dateutil.ParseDay("today", dates, m.now().In(loc)); err == nil {
		m.dayIndex = i
	}
	return nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return func() tea.Msg { return commands.ErrMsg{Err: m.err} }
	}
	return m.loadDay()
}

func (m Model) loadDay() tea.Cmd {
	if m.repo == nil || len(m.days) == 0 {
		return nil
	}
	return commands.LoadDay(m.repo, m.dayIndex, m.days[m.dayIndex])
}

// Run starts the board.
func Run(repo schedule.Repository, cfg *config.Config, logger *slog.Logger) error {
	model := New(repo, cfg, WithLogger(logger))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
