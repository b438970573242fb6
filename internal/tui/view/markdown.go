package view

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/schedule"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

// SessionMarkdown describes a session as a markdown document.
func SessionMarkdown(s schedule.Session, track string, loc *time.Location) string {
	ts := s.Timeslot
	if loc != nil {
		ts = ts.In(loc)
	}

	var b strings.Builder
	title := s.Title()
	if len(s.Emojis) > 0 {
		title = strings.Join(s.Emojis, " ") + " " + title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Track | %s |\n", escapeCell(track))
	fmt.Fprintf(&b, "| Day | %s |\n", ts.Start.Format("Monday, January 2"))
	fmt.Fprintf(&b, "| Time | %s (%s) |\n", ts, dateutil.FormatDuration(ts.Minutes()))
	if s.Language != "" {
		fmt.Fprintf(&b, "| Language | %s |\n", escapeCell(s.Language))
	}
	fmt.Fprintf(&b, "| Color | %s |\n", s.Color)
	fmt.Fprintf(&b, "| ID | `%s` |\n", s.ID)

	if p := s.Proposal; p != nil {
		b.WriteString("\n## Proposal\n\n")
		fmt.Fprintf(&b, "**%s**\n\n", p.Title)
		for _, sp := range p.Speakers {
			fmt.Fprintf(&b, "- %s\n", sp)
		}
	}
	return b.String()
}

// AgendaMarkdown lists the sessions of one day per track, for copying out of the board.
func AgendaMarkdown(title string, tracks []schedule.Track, sessions []schedule.Session, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	for _, tr := range tracks {
		fmt.Fprintf(&b, "\n## %s\n\n", tr.Name)
		onTrack := schedule.OnTrack(sessions, tr.ID)
		if len(onTrack) == 0 {
			b.WriteString("_No sessions_\n")
			continue
		}
		for _, s := range onTrack {
			ts := s.Timeslot
			if loc != nil {
				ts = ts.In(loc)
			}
			label := s.Title()
			if len(s.Emojis) > 0 {
				label = strings.Join(s.Emojis, " ") + " " + label
			}
			if s.Language != "" {
				label += " [" + s.Language + "]"
			}
			fmt.Fprintf(&b, "- %s %s\n", ts, label)
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders markdown for a dark or light terminal, wrapped to width.
func RenderMarkdown(md string, width int, dark bool) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := renderer(width, dark)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func renderer(width int, dark bool) (*glamour.TermRenderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := rendererKey{width: width, dark: dark}
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	renderers[key] = r
	return r, nil
}

func markdownStyle(dark bool) glamouransi.StyleConfig {
	base := styles.LightStyleConfig
	if dark {
		base = styles.DarkStyleConfig
	}
	// Modals add their own padding.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}
