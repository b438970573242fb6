package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/conference-hall/hall/internal/config"
	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/db"
	"github.com/conference-hall/hall/internal/logging"
	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       schedule.Repository
	ownsRepo   bool // repo was opened by the app and must be closed by it
	planner    *planner.Service
	config     *config.Config
	configPath string
	logger     *slog.Logger
	closeLog   func()
	root       *cobra.Command
	debug      bool // Enable debug logging
	noColor    bool
	now        func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{
		repo:       repo,
		config:     cfg,
		configPath: config.DefaultConfigPath(),
		logger:     logging.Discard(),
		closeLog:   func() {},
		now:        time.Now,
	}

	a.root = &cobra.Command{
		Use:   "hall",
		Short: "Build conference event-day schedules",
		Long: `Hall places sessions (talks, breaks, custom blocks) onto named tracks
across the days of an event.

Run without arguments to open the schedule board. Sessions can be created by
selecting a range, moved, resized and swapped by dragging, and never overlap on
a track.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.logger)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to "+logging.DebugLogPath)
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.trackCmd())
	a.root.AddCommand(a.sessionCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.mcpCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "hall %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setup configures logging and color before any command runs.
func (a *App) setup(_ *cobra.Command, _ []string) error {
	if a.noColor {
		DisableColor()
	}
	logger, closeLog, err := logging.Setup(a.config.Log.Level, a.debug)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog
	return nil
}

// ensureRepo opens the configured database when no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo == nil {
		path := a.config.Storage.DBPath
		if path == "" {
			return fmt.Errorf("db path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		loc, err := a.config.Location()
		if err != nil {
			return err
		}
		repo, err := db.New(path, db.WithLocation(loc))
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		a.repo = repo
		a.ownsRepo = true
	}
	if a.planner == nil {
		a.planner = planner.NewService(a.repo, a.logger)
	}
	return nil
}

// days returns the configured event days.
func (a *App) days() ([]schedule.Day, error) {
	dates, err := a.config.Days()
	if err != nil {
		return nil, err
	}
	loc, err := a.config.Location()
	if err != nil {
		return nil, err
	}
	return schedule.NewDays(dates, loc, a.config.Schedule.DayStart, a.config.Schedule.DayEnd)
}

// day resolves a day reference ("", "2", "friday", "2025-06-12") to an event day.
func (a *App) day(ref string) (schedule.Day, error) {
	days, err := a.days()
	if err != nil {
		return schedule.Day{}, err
	}
	dates := make([]time.Time, len(days))
	for i, d := range days {
		dates[i] = d.Date
	}
	loc, err := a.config.Location()
	if err != nil {
		return schedule.Day{}, err
	}
	i, err := dateutil.ParseDay(ref, dates, a.now().In(loc))
	if err != nil {
		return schedule.Day{}, fmt.Errorf("day %q: %w", ref, err)
	}
	return days[i], nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository opened by the app and the debug log.
func (a *App) Close() error {
	a.closeLog()
	if a.ownsRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
