// Package theme provides color themes for the board.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/conference-hall/hall/internal/schedule"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured or the configured one is unknown.
const DefaultName = "mocha"

// Theme holds all colors for a board theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Time column, empty rows
	BgSelection string `toml:"bg_selection"` // Selected range
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Grid lines, hints
	Accent      string `toml:"accent"`       // Title, borders
	Current     string `toml:"current"`      // Cursor
	Warning     string `toml:"warning"`      // Rejected drops, errors

	// Session block colors keyed by schedule color name.
	Sessions SessionColors `toml:"sessions"`

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// SessionColors maps each session color to a hex value.
type SessionColors struct {
	Gray   string `toml:"gray"`
	Blue   string `toml:"blue"`
	Green  string `toml:"green"`
	Yellow string `toml:"yellow"`
	Orange string `toml:"orange"`
	Red    string `toml:"red"`
	Pink   string `toml:"pink"`
	Purple string `toml:"purple"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// SessionColor returns the hex value for c. Unknown or unset colors use gray,
// then the accent.
func (t *Theme) SessionColor(c schedule.Color) string {
	var hex string
	switch c {
	case schedule.ColorBlue:
		hex = t.Sessions.Blue
	case schedule.ColorGreen:
		hex = t.Sessions.Green
	case schedule.ColorYellow:
		hex = t.Sessions.Yellow
	case schedule.ColorOrange:
		hex = t.Sessions.Orange
	case schedule.ColorRed:
		hex = t.Sessions.Red
	case schedule.ColorPink:
		hex = t.Sessions.Pink
	case schedule.ColorPurple:
		hex = t.Sessions.Purple
	}
	return coalesce(hex, t.Sessions.Gray, t.Accent)
}

// Dark reports whether the theme has a dark background.
func (t *Theme) Dark() bool {
	return !isLightTheme(t.Bg)
}

// ModalPalette provides the modal-specific colors derived from the theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal palette, falling back to base theme colors when needed.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

func (t *Theme) applyDefaults() {
	modal := t.Modal()
	t.BaseBg = modal.BaseBg
	t.ModalBorder = modal.ModalBorder
	t.TextPrimary = modal.TextPrimary
	t.TextMuted = modal.TextMuted
	t.Highlight = modal.Highlight
	if t.Sessions.Gray == "" {
		t.Sessions.Gray = t.FgMuted
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
