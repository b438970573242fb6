package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a w x h box filled with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads every line to width and the block to height.
// Lines wider than width are left alone; extra lines are dropped.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w < width {
			line += pad.Render(strings.Repeat(" ", width-w))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// RenderModalOverlay centers modal over base, cutting the base lines around it.
func RenderModalOverlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modal, "\n")
	modalW := 0
	for _, line := range modalLines {
		modalW = max(modalW, lipgloss.Width(line))
	}
	if modalW == 0 {
		return base
	}
	modalW = min(modalW, width)

	top := max(0, (height-len(modalLines))/2)
	left := max(0, (width-modalW)/2)
	pad := lipgloss.NewStyle().Background(modalBg)
	bgSeq := ModalBackgroundSeq(modalBg)

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for i, line := range modalLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		if w := lipgloss.Width(line); w > modalW {
			line = ansi.Cut(line, 0, modalW)
		} else if w < modalW {
			line += pad.Render(strings.Repeat(" ", modalW-w))
		}
		if bgSeq != "" {
			line = reapplyBackground(line, bgSeq)
		}
		under := baseLines[row]
		baseLines[row] = ansi.Cut(under, 0, left) + line + ansi.ResetStyle + ansi.Cut(under, left+modalW, width)
	}
	return strings.Join(baseLines, "\n")
}

// reapplyBackground restores the modal background after every reset inside line,
// so nested styles do not punch holes into the modal.
func reapplyBackground(line, bgSeq string) string {
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bgSeq)
	}
	return line
}

// ModalBackgroundSeq returns the background escape sequence for the modal color.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}
