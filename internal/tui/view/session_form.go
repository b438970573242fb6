package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is one rendered line of the session form.
type FormField struct {
	Label   string
	Value   string // already rendered input or selector
	Focused bool
}

// SessionFormModel contains the fields needed to render the session form body.
type SessionFormModel struct {
	Track    string
	DayLabel string
	Duration string
	Fields   []FormField
	Error    string
}

// SessionFormStyles groups styles for the session form body.
type SessionFormStyles struct {
	TagStyle   lipgloss.Style
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	FocusStyle lipgloss.Style
	ErrorStyle lipgloss.Style
	HintStyle  lipgloss.Style
}

// RenderSessionFormBody renders the modal body for the session form.
func RenderSessionFormBody(model SessionFormModel, styles SessionFormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	tags := []string{styles.TagStyle.Render(model.Track), styles.TagStyle.Render(model.DayLabel)}
	if model.Duration != "" {
		tags = append(tags, styles.TagStyle.Render(model.Duration))
	}
	body.WriteString(strings.Join(tags, sep) + "\n\n")

	for _, f := range model.Fields {
		label := styles.LabelStyle
		if f.Focused {
			label = styles.FocusStyle
		}
		body.WriteString(label.Render(f.Label) + sep + f.Value + "\n")
	}

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	} else {
		body.WriteString("\n" + styles.HintStyle.Render("Times are HH:MM. Emojis are separated by spaces or commas.") + "\n")
	}

	return body.String()
}
