package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
)

// Stats holds aggregated statistics for one day of sessions.
type Stats struct {
	Sessions     int
	TotalMinutes int
	TrackMinutes map[string]int
	FreeMinutes  int // Window minutes not covered by any session, summed over tracks
}

// ComputeStats aggregates the sessions of an agenda against its day window.
func ComputeStats(a planner.Agenda) Stats {
	stats := Stats{TrackMinutes: make(map[string]int, len(a.Tracks))}
	for _, s := range a.Sessions {
		m := s.Timeslot.Minutes()
		stats.Sessions++
		stats.TotalMinutes += m
		stats.TrackMinutes[s.TrackID] += m
	}

	window := a.Day.Window.Minutes()
	for _, t := range a.Tracks {
		if free := window - stats.TrackMinutes[t.ID]; free > 0 {
			stats.FreeMinutes += free
		}
	}
	return stats
}

// PrintOpts configures agenda printing behavior.
type PrintOpts struct {
	Location   *time.Location // Display timezone
	Verbose    bool           // Show full titles and session ids
	TitleWidth int            // Maximum title width (0 = auto)
}

// CalcTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcTitleWidth(defaultWidth int) int {
	if o.TitleWidth > 0 {
		return o.TitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// Base: "    ● HH:MM-HH:MM  XhYYm  " = ~27 chars, id suffix = ~10 chars
	available := termWidth() - 37
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintAgenda prints one day grouped by track.
func PrintAgenda(w io.Writer, a planner.Agenda, opts PrintOpts) {
	titleWidth := opts.CalcTitleWidth(40)

	_, _ = fmt.Fprintf(w, "=== %s ===\n", formatHeader(a.Day.Label()))
	for _, t := range a.Tracks {
		_, _ = fmt.Fprintf(w, "\n%s\n", formatTrack(t.Name))
		sessions := schedule.OnTrack(a.Sessions, t.ID)
		if len(sessions) == 0 {
			_, _ = fmt.Fprintf(w, "    %s\n", formatMuted("(empty)"))
			continue
		}
		for _, s := range sessions {
			PrintSessionRow(w, s, opts, titleWidth)
		}
	}
	_, _ = fmt.Fprintln(w)
	PrintStats(w, ComputeStats(a))
}

// PrintSessionRow prints a single session row with consistent formatting.
func PrintSessionRow(w io.Writer, s schedule.Session, opts PrintOpts, titleWidth int) {
	ts := s.Timeslot
	if opts.Location != nil {
		ts = ts.In(opts.Location)
	}

	title := s.Title()
	if len(s.Emojis) > 0 {
		title = strings.Join(s.Emojis, "") + " " + title
	}
	if s.Language != "" {
		title += " [" + s.Language + "]"
	}
	title = FitWidth(title, titleWidth)

	duration := fmt.Sprintf("%-6s", dateutil.FormatDuration(ts.Minutes()))
	line := fmt.Sprintf("    %s %s  %s  %s",
		formatSession(s.Color, "●"), ts, formatMuted(duration), formatSession(s.Color, title))
	if opts.Verbose {
		line += "  " + formatMuted(ShortID(s.ID))
	}
	_, _ = fmt.Fprintln(w, line)
}

// PrintStats prints the stats summary line.
func PrintStats(w io.Writer, stats Stats) {
	_, _ = fmt.Fprintf(w, "%s | Scheduled: %s | Free: %s\n",
		formatStats(fmt.Sprintf("Sessions: %d", stats.Sessions)),
		dateutil.FormatDuration(stats.TotalMinutes),
		dateutil.FormatDuration(stats.FreeMinutes))
}

// FitWidth truncates s to width display columns and pads it to exactly width.
// Wide runes such as emojis count as two columns.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// ShortID returns the first eight characters of an id, enough to pass back as a prefix.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// PlacementNote describes how an edit changed a session compared to what was asked.
func PlacementNote(requested, got schedule.Session) string {
	switch {
	case !got.Timeslot.Equal(requested.Timeslot) && got.Timeslot.Minutes() < requested.Timeslot.Minutes():
		return formatWarning("(shortened to fit)")
	case !got.Timeslot.Equal(requested.Timeslot):
		return formatWarning("(adjusted)")
	default:
		return ""
	}
}
