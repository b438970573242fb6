package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDeleteModel contains the fields needed to render the confirm delete body.
type ConfirmDeleteModel struct {
	Title     string
	Track     string
	TimeRange string
	DateLabel string
}

// ConfirmDeleteStyles groups styles for the confirm delete body.
type ConfirmDeleteStyles struct {
	BodyStyle lipgloss.Style
	MetaStyle lipgloss.Style
}

// RenderConfirmDeleteBody renders the modal body for the delete confirmation.
func RenderConfirmDeleteBody(model ConfirmDeleteModel, styles ConfirmDeleteStyles) string {
	var body strings.Builder

	body.WriteString(styles.BodyStyle.Render(fmt.Sprintf("%q", model.Title)) + "\n")
	body.WriteString(styles.MetaStyle.Render(fmt.Sprintf("%s · %s · %s", model.Track, model.DateLabel, model.TimeRange)) + "\n\n")
	body.WriteString(styles.BodyStyle.Render("The session will be removed from the schedule."))

	return body.String()
}
