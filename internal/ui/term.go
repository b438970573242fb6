package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/conference-hall/hall/internal/schedule"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Track names: bold cyan
	colorTrack = color.New(color.FgCyan, color.Bold)

	// Stats: green for totals
	colorStats = color.New(color.FgGreen)

	// Warnings: clamped or ignored edits
	colorWarning = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// sessionColors maps session colors to the closest terminal color.
var sessionColors = map[schedule.Color]*color.Color{
	schedule.ColorGray:   color.New(color.FgWhite, color.Faint),
	schedule.ColorBlue:   color.New(color.FgBlue),
	schedule.ColorGreen:  color.New(color.FgGreen),
	schedule.ColorYellow: color.New(color.FgYellow),
	schedule.ColorOrange: color.New(color.FgHiYellow),
	schedule.ColorRed:    color.New(color.FgRed),
	schedule.ColorPink:   color.New(color.FgHiMagenta),
	schedule.ColorPurple: color.New(color.FgMagenta),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output, for the CLI and the board.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// formatSession renders s in its session color.
func formatSession(c schedule.Color, s string) string {
	if sc, ok := sessionColors[c]; ok {
		return sc.Sprint(s)
	}
	return s
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatTrack(s string) string {
	return colorTrack.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
