package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRenderModalFrameSkipsEmptySections(t *testing.T) {
	got := RenderModalFrame("Delete session?", "", "", ModalStyles{})
	if got != "Delete session?" {
		t.Fatalf("frame = %q, want only the title", got)
	}

	got = RenderModalFrame("Keynote", "body", "keys", ModalStyles{})
	if got != "Keynote\n\nbody\n\nkeys" {
		t.Fatalf("frame = %q", got)
	}
}

func TestRenderKeyHintsHighlightsFirst(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	styles := ModalStyles{
		Key:       lipgloss.NewStyle(),
		DangerKey: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
	}
	got := RenderKeyHints(styles, styles.DangerKey, KeyHint{"y", "Delete"}, KeyHint{"n", "Cancel"})

	if !strings.HasPrefix(got, styles.DangerKey.Render("[y] Delete")) {
		t.Errorf("first hint should use the given style: %q", got)
	}
	if !strings.Contains(got, styles.Body.Render(" ")+"[n] Cancel") {
		t.Errorf("hints should be joined by a body styled space: %q", got)
	}
}
