// Package tui provides the terminal schedule board for hall.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/tui/theme"
	"github.com/conference-hall/hall/internal/tui/view"
)

// Width of the time column, "09:00" plus padding.
const timeColWidth = 6

// Default track column width - recalculated from the terminal width.
const defaultColWidth = 18

// Styles holds all lipgloss styles for the board, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// Header styles
	TitleStyle       lipgloss.Style
	TrackHeaderStyle lipgloss.Style

	// Grid
	TimeColumnStyle lipgloss.Style
	HourColumnStyle lipgloss.Style
	BlockStyle      lipgloss.Style
	EmptyCellStyle  lipgloss.Style
	CursorStyle     lipgloss.Style
	SelectionStyle  lipgloss.Style
	DropStyle       lipgloss.Style
	RejectStyle     lipgloss.Style
	BorderStyle     lipgloss.Style

	// Footer
	StatsBarStyle lipgloss.Style
	StatusStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	HelpStyle     lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalTagStyle          lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalInputStyle        lipgloss.Style
	ModalInputFocusedStyle lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalErrorStyle        lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{
		palette:          palette,
		colorBg:          palette.Bg,
		colorBgHighlight: palette.BgHighlight,
		colorFg:          palette.Fg,
		colorFgMuted:     palette.FgMuted,
		colorAccent:      palette.Accent,
		colorWarning:     palette.Warning,
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.TrackHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg).
		Width(defaultColWidth)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Width(timeColWidth)

	// Full hours stand out in the time column
	s.HourColumnStyle = s.TimeColumnStyle.
		Foreground(s.colorAccent).
		Bold(true)

	s.BlockStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.CursorStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Background(palette.BgSelection).
		Foreground(palette.Current).
		Bold(true)

	s.SelectionStyle = s.BlockStyle.
		Background(palette.Current).
		Foreground(palette.TextOnCurrent).
		Bold(true)

	s.DropStyle = s.BlockStyle.
		Background(s.colorAccent).
		Foreground(palette.TextOnAccent).
		Bold(true)

	s.RejectStyle = s.BlockStyle.
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning).
		Bold(true)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.StatsBarStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.ErrorStyle = s.StatusStyle.
		Foreground(s.colorWarning)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Bold(true).
		Padding(0, 1)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Width(10).
		Background(modalBg)

	s.ModalInputStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(44)

	s.ModalInputFocusedStyle = s.ModalInputStyle.
		Background(modal.Panel)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Padding(0, 2)

	s.ModalButtonActiveStyle = s.ModalButtonStyle.
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Bold(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg).
		Italic(true)

	s.ModalErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(modalBg).
		Bold(true)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		Foreground(s.colorFg)

	return s
}

// Session returns the block style of a session color.
// alt shades back-to-back blocks of the same color, pending mutes blocks whose
// change is not confirmed yet.
func (s *Styles) Session(c schedule.Color, alt, pending bool) lipgloss.Style {
	shades := s.palette.Session(c)
	bg := shades.Bg
	switch {
	case pending:
		bg = shades.Pending
	case alt:
		bg = shades.Alt
	}
	return s.BlockStyle.
		Background(bg).
		Foreground(shades.Text).
		Bold(!pending)
}

// Swatch renders a color sample for the session form.
func (s *Styles) Swatch(c schedule.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.palette.Session(c).Accent).
		Background(s.ModalBgColor)
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:      s.ModalStyle,
		Header:     s.ModalHeaderStyle,
		Title:      s.ModalTitleStyle,
		Body:       s.ModalBodyStyle,
		Footer:     s.ModalFooterStyle,
		Key:        s.ModalButtonStyle.Padding(0, 1),
		PrimaryKey: s.ModalButtonActiveStyle.Padding(0, 1),
		DangerKey:  s.ModalButtonActiveStyle.Padding(0, 1).Background(s.colorWarning),
	}
}
