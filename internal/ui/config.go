package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conference-hall/hall/internal/config"
	"github.com/conference-hall/hall/internal/tui/theme"
	"github.com/conference-hall/hall/internal/zoom"
)

func (a *App) configCmd() *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config. Pass --edit to change it.

Example:
  hall config
  hall config --edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfig(cmd.InOrStdin(), cmd.OutOrStdout(), edit)
		},
	}
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Edit the configuration interactively")
	return cmd
}

func (a *App) runConfig(in io.Reader, out io.Writer, edit bool) error {
	path := a.configPath
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", path)
	}

	printConfig(out, cfg)
	if !edit {
		return nil
	}

	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintln(out)

	cfg.Event.Name = promptValue(reader, out, "Event name", cfg.Event.Name)
	cfg.Event.StartDate = promptValue(reader, out, "First day (YYYY-MM-DD, empty for today)", cfg.Event.StartDate)
	cfg.Event.EndDate = promptValue(reader, out, "Last day (YYYY-MM-DD, empty for one day)", cfg.Event.EndDate)
	cfg.Event.Timezone = promptValue(reader, out, "Timezone", cfg.Event.Timezone)
	cfg.Schedule.DayStart = promptValue(reader, out, "Day start", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = promptValue(reader, out, "Day end", cfg.Schedule.DayEnd)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.UI.Zoom = promptZoom(reader, out, cfg.UI.Zoom)
	cfg.Log.Level = promptValue(reader, out, "Log level (debug, info, warn, error)", cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Current configuration:")
	_, _ = fmt.Fprintln(w, "──────────────────────")
	_, _ = fmt.Fprintln(w, "[event]")
	_, _ = fmt.Fprintf(w, "  name       = %s\n", cfg.Event.Name)
	_, _ = fmt.Fprintf(w, "  start_date = %s\n", orNone(cfg.Event.StartDate))
	_, _ = fmt.Fprintf(w, "  end_date   = %s\n", orNone(cfg.Event.EndDate))
	_, _ = fmt.Fprintf(w, "  timezone   = %s\n", cfg.Event.Timezone)
	_, _ = fmt.Fprintln(w, "\n[schedule]")
	_, _ = fmt.Fprintf(w, "  day_start  = %s\n", cfg.Schedule.DayStart)
	_, _ = fmt.Fprintf(w, "  day_end    = %s\n", cfg.Schedule.DayEnd)
	_, _ = fmt.Fprintln(w, "\n[storage]")
	_, _ = fmt.Fprintf(w, "  db_path    = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(w, "\n[ui]")
	_, _ = fmt.Fprintf(w, "  theme      = %s\n", cfg.UI.Theme)
	_, _ = fmt.Fprintf(w, "  zoom       = %d\n", cfg.UI.Zoom)
	_, _ = fmt.Fprintln(w, "\n[log]")
	_, _ = fmt.Fprintf(w, "  level      = %s\n", cfg.Log.Level)
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(w, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		_, _ = fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
		// Stop asking once input is exhausted.
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptZoom(reader *bufio.Reader, w io.Writer, current int) int {
	label := fmt.Sprintf("Zoom level (0-%d)", zoom.MaxLevel)
	value := promptValue(reader, w, label, strconv.Itoa(current))
	level, err := strconv.Atoi(value)
	if err != nil || level < 0 || level > zoom.MaxLevel {
		_, _ = fmt.Fprintf(w, "  Invalid zoom %q, keeping %d\n", value, current)
		return current
	}
	return level
}
