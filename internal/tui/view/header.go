package view

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/conference-hall/hall/internal/schedule"
)

// HeaderLabels builds the grid header: an empty time column, then one label per
// track truncated to colWidth.
func HeaderLabels(tracks []schedule.Track, colWidth int) []string {
	labels := make([]string, 0, len(tracks)+1)
	labels = append(labels, "")
	for _, tr := range tracks {
		labels = append(labels, ansi.Truncate(tr.Name, max(1, colWidth), "…"))
	}
	return labels
}

// TitleLine formats the board title, e.g. "DevFest · Day 1/2 · Thursday, June 12".
func TitleLine(event string, index, count int, day schedule.Day) string {
	title := fmt.Sprintf("Day %d/%d · %s", index+1, count, day.Label())
	if event != "" {
		title = event + " · " + title
	}
	return title
}
