// Package view provides rendering helpers for the board.
package view

import "github.com/charmbracelet/lipgloss"

// ViewState is the board and the optional modal drawn over it.
type ViewState struct {
	Width        int
	Height       int
	BaseContent  string
	ModalContent string
	ShowModal    bool
	ModalBg      lipgloss.Color
}

// Render composes the final view output. Nothing is drawn before the first
// window size is known.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		return "Loading..."
	}
	if state.ShowModal && state.ModalContent != "" {
		return RenderModalOverlay(state.BaseContent, state.ModalContent, state.Width, state.Height, state.ModalBg)
	}
	return state.BaseContent
}
