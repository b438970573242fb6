package mcp

import (
	"time"

	"github.com/conference-hall/hall/internal/schedule"
)

type ListDaysParams struct{}

type ListTracksParams struct{}

type AddTrackParams struct {
	Name string `json:"name" jsonschema:"Track display name, usually a room"`
}

type GetAgendaParams struct {
	Day string `json:"day,omitempty" jsonschema:"Event day: number starting at 1, today, tomorrow, weekday name or YYYY-MM-DD. Defaults to the first day"`
}

type GetSessionParams struct {
	Session string `json:"session" jsonschema:"Session id or unique id prefix"`
}

type AddSessionParams struct {
	Track    string   `json:"track" jsonschema:"Track name or id"`
	Day      string   `json:"day,omitempty" jsonschema:"Event day, defaults to the first day"`
	Start    string   `json:"start" jsonschema:"Start time HH:MM"`
	End      string   `json:"end" jsonschema:"End time HH:MM"`
	Name     string   `json:"name,omitempty" jsonschema:"Session name, e.g. Lunch or a talk title"`
	Language string   `json:"language,omitempty" jsonschema:"Language code, e.g. en"`
	Color    string   `json:"color,omitempty" jsonschema:"One of gray, blue, green, yellow, orange, red, pink, purple"`
	Emojis   []string `json:"emojis,omitempty" jsonschema:"Emojis shown before the name"`
}

type UpdateSessionParams struct {
	Session  string    `json:"session" jsonschema:"Session id or unique id prefix"`
	Name     *string   `json:"name,omitempty" jsonschema:"New name"`
	Language *string   `json:"language,omitempty" jsonschema:"New language code, empty to clear"`
	Color    *string   `json:"color,omitempty" jsonschema:"New color"`
	Emojis   *[]string `json:"emojis,omitempty" jsonschema:"Replacement emojis, empty to clear"`
}

type MoveSessionParams struct {
	Session string `json:"session" jsonschema:"Session id or unique id prefix"`
	Start   string `json:"start" jsonschema:"New start time HH:MM"`
	Track   string `json:"track,omitempty" jsonschema:"Target track, defaults to the current one"`
	Day     string `json:"day,omitempty" jsonschema:"Target event day, defaults to the current one"`
}

type ResizeSessionParams struct {
	Session string `json:"session" jsonschema:"Session id or unique id prefix"`
	End     string `json:"end" jsonschema:"New end time HH:MM"`
}

type SwapSessionsParams struct {
	First  string `json:"first" jsonschema:"Session id or unique id prefix"`
	Second string `json:"second" jsonschema:"Session id or unique id prefix"`
}

type DeleteSessionParams struct {
	Session string `json:"session" jsonschema:"Session id or unique id prefix"`
}

type dayView struct {
	Number int    `json:"number"`
	Date   string `json:"date"`
	Label  string `json:"label"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type trackView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Position int           `json:"position"`
	Sessions []sessionView `json:"sessions,omitempty"`
}

type proposalView struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Speakers []string `json:"speakers,omitempty"`
}

type sessionView struct {
	ID       string        `json:"id"`
	TrackID  string        `json:"track_id"`
	Track    string        `json:"track,omitempty"`
	Date     string        `json:"date"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Minutes  int           `json:"minutes"`
	Title    string        `json:"title"`
	Name     string        `json:"name,omitempty"`
	Language string        `json:"language,omitempty"`
	Color    string        `json:"color"`
	Emojis   []string      `json:"emojis,omitempty"`
	Proposal *proposalView `json:"proposal,omitempty"`
}

type agendaView struct {
	Day    dayView     `json:"day"`
	Tracks []trackView `json:"tracks"`
}

type changeView struct {
	Changed  bool          `json:"changed"`
	Sessions []sessionView `json:"sessions"`
	Note     string        `json:"note,omitempty"`
}

func newDayView(i int, d schedule.Day) dayView {
	return dayView{
		Number: i + 1,
		Date:   d.Date.Format("2006-01-02"),
		Label:  d.Label(),
		Start:  d.Window.Start.Format("15:04"),
		End:    d.Window.End.Format("15:04"),
	}
}

func newTrackView(t schedule.Track) trackView {
	return trackView{ID: t.ID, Name: t.Name, Position: t.Position}
}

func newSessionView(s schedule.Session, track string, loc *time.Location) sessionView {
	ts := s.Timeslot
	if loc != nil {
		ts = ts.In(loc)
	}
	v := sessionView{
		ID:       s.ID,
		TrackID:  s.TrackID,
		Track:    track,
		Date:     ts.Start.Format("2006-01-02"),
		Start:    ts.Start.Format("15:04"),
		End:      ts.End.Format("15:04"),
		Minutes:  ts.Minutes(),
		Title:    s.Title(),
		Name:     s.Name,
		Language: s.Language,
		Color:    string(s.Color),
		Emojis:   s.Emojis,
	}
	if p := s.Proposal; p != nil {
		v.Proposal = &proposalView{ID: p.ID, Title: p.Title, Speakers: p.Speakers}
	}
	return v
}
