package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles of a modal frame and its key hints.
type ModalStyles struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Footer lipgloss.Style

	Key        lipgloss.Style
	PrimaryKey lipgloss.Style
	DangerKey  lipgloss.Style
}

// RenderModalFrame stacks title, body and footer inside the modal frame.
// Empty sections are skipped.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	sections := []string{styles.Header.Render(styles.Title.Render(title))}
	if body != "" {
		sections = append(sections, body)
	}
	if footer != "" {
		sections = append(sections, styles.Footer.Render(footer))
	}
	return styles.Frame.Render(strings.Join(sections, "\n\n"))
}

// KeyHint is a key binding shown in a modal footer as "[Key] Action".
type KeyHint struct {
	Key    string
	Action string
}

// RenderKeyHints renders hints as buttons. The first hint is drawn with
// primary, the rest with the plain key style.
func RenderKeyHints(styles ModalStyles, primary lipgloss.Style, hints ...KeyHint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		style := styles.Key
		if i == 0 {
			style = primary
		}
		parts[i] = style.Render("[" + h.Key + "] " + h.Action)
	}
	return strings.Join(parts, styles.Body.Render(" "))
}
