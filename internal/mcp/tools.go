package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

type tools struct {
	planner *planner.Service
	days    []schedule.Day
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_days",
		Description: "List the event days with their displayed time window",
	}, t.listDays)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tracks",
		Description: "List tracks (rooms) in display order",
	}, t.listTracks)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_track",
		Description: "Add a track after the last one",
	}, t.addTrack)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_agenda",
		Description: "Get every session of one event day grouped by track",
	}, t.getAgenda)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_session",
		Description: "Get one session by id or unique id prefix",
	}, t.getSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_session",
		Description: "Add a session to a track. Fails if it overlaps another session on that track",
	}, t.addSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_session",
		Description: "Change the name, language, color or emojis of a session. Placement is unchanged",
	}, t.updateSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_session",
		Description: "Move a session to a new start, optionally on another track or day. Keeps its duration unless the next session starts earlier; a start inside another session changes nothing",
	}, t.moveSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resize_session",
		Description: "Change the end of a session. The end is clamped to the next session and the session keeps at least 5 minutes",
	}, t.resizeSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "swap_sessions",
		Description: "Exchange the track and time of two sessions",
	}, t.swapSessions)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session",
	}, t.deleteSession)
}

func (t *tools) listDays(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListDaysParams) (*sdkmcp.CallToolResult, any, error) {
	views := make([]dayView, len(t.days))
	for i, d := range t.days {
		views[i] = newDayView(i, d)
	}
	return t.ok(map[string]any{"timezone": t.loc.String(), "days": views})
}

func (t *tools) listTracks(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListTracksParams) (*sdkmcp.CallToolResult, any, error) {
	tracks, err := t.planner.Tracks(ctx)
	if err != nil {
		return t.fail(err)
	}
	views := make([]trackView, len(tracks))
	for i, tr := range tracks {
		views[i] = newTrackView(tr)
	}
	return t.ok(map[string]any{"tracks": views})
}

func (t *tools) addTrack(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTrackParams) (*sdkmcp.CallToolResult, any, error) {
	tr, err := t.planner.AddTrack(ctx, in.Name)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(newTrackView(tr))
}

func (t *tools) getAgenda(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetAgendaParams) (*sdkmcp.CallToolResult, any, error) {
	i, day, err := t.day(in.Day)
	if err != nil {
		return t.fail(err)
	}
	agenda, err := t.planner.Agenda(ctx, day)
	if err != nil {
		return t.fail(err)
	}

	view := agendaView{Day: newDayView(i, day), Tracks: make([]trackView, 0, len(agenda.Tracks))}
	for _, tr := range agenda.Tracks {
		tv := newTrackView(tr)
		for _, s := range schedule.OnTrack(agenda.Sessions, tr.ID) {
			tv.Sessions = append(tv.Sessions, newSessionView(s, tr.Name, t.loc))
		}
		view.Tracks = append(view.Tracks, tv)
	}
	return t.ok(view)
}

func (t *tools) getSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetSessionParams) (*sdkmcp.CallToolResult, any, error) {
	s, err := t.planner.ResolveSession(ctx, in.Session)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(t.view(ctx, s))
}

func (t *tools) addSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddSessionParams) (*sdkmcp.CallToolResult, any, error) {
	_, day, err := t.day(in.Day)
	if err != nil {
		return t.fail(err)
	}
	ts, err := timeslot.Between(day.Date, in.Start, in.End)
	if err != nil {
		return t.fail(err)
	}
	color, err := schedule.ParseColor(in.Color)
	if err != nil {
		return t.fail(err)
	}

	s, err := t.planner.AddSession(ctx, planner.AddRequest{
		TrackRef: in.Track,
		Timeslot: ts,
		Name:     in.Name,
		Language: in.Language,
		Color:    color,
		Emojis:   in.Emojis,
	})
	if err != nil {
		return t.fail(err)
	}
	return t.ok(t.view(ctx, s))
}

func (t *tools) updateSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateSessionParams) (*sdkmcp.CallToolResult, any, error) {
	d := planner.Details{Name: in.Name, Language: in.Language, Emojis: in.Emojis}
	if in.Color != nil {
		c, err := schedule.ParseColor(*in.Color)
		if err != nil {
			return t.fail(err)
		}
		d.Color = &c
	}
	s, err := t.planner.UpdateDetails(ctx, in.Session, d)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(t.view(ctx, s))
}

func (t *tools) moveSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveSessionParams) (*sdkmcp.CallToolResult, any, error) {
	before, err := t.planner.ResolveSession(ctx, in.Session)
	if err != nil {
		return t.fail(err)
	}
	date := dateutil.TruncateToDay(before.Timeslot.Start.In(t.loc))
	if in.Day != "" {
		_, day, err := t.day(in.Day)
		if err != nil {
			return t.fail(err)
		}
		date = day.Date
	}
	start, err := timeslot.At(date, in.Start)
	if err != nil {
		return t.fail(err)
	}

	updated, err := t.planner.MoveSession(ctx, before.ID, in.Track, start)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(t.change(ctx, updated, before.ID, timeslot.MoveStart(before.Timeslot, start)))
}

func (t *tools) resizeSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in ResizeSessionParams) (*sdkmcp.CallToolResult, any, error) {
	before, err := t.planner.ResolveSession(ctx, in.Session)
	if err != nil {
		return t.fail(err)
	}
	end, err := timeslot.At(dateutil.TruncateToDay(before.Timeslot.Start.In(t.loc)), in.End)
	if err != nil {
		return t.fail(err)
	}

	updated, err := t.planner.ResizeSession(ctx, before.ID, end)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(t.change(ctx, updated, before.ID, timeslot.Timeslot{Start: before.Timeslot.Start, End: end}))
}

func (t *tools) swapSessions(ctx context.Context, _ *sdkmcp.CallToolRequest, in SwapSessionsParams) (*sdkmcp.CallToolResult, any, error) {
	updated, err := t.planner.SwapSessions(ctx, in.First, in.Second)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(t.change(ctx, updated, "", timeslot.Timeslot{}))
}

func (t *tools) deleteSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteSessionParams) (*sdkmcp.CallToolResult, any, error) {
	s, err := t.planner.DeleteSession(ctx, in.Session)
	if err != nil {
		return t.fail(err)
	}
	return t.ok(map[string]any{"deleted": newSessionView(s, "", t.loc)})
}

// day resolves a day reference and returns its index among the event days.
func (t *tools) day(ref string) (int, schedule.Day, error) {
	if len(t.days) == 0 {
		return 0, schedule.Day{}, dateutil.ErrNotEventDay
	}
	dates := make([]time.Time, len(t.days))
	for i, d := range t.days {
		dates[i] = d.Date
	}
	i, err := dateutil.ParseDay(ref, dates, t.now().In(t.loc))
	if err != nil {
		return 0, schedule.Day{}, fmt.Errorf("day %q: %w", ref, err)
	}
	return i, t.days[i], nil
}

// view renders a session with its track name.
func (t *tools) view(ctx context.Context, s schedule.Session) sessionView {
	name := ""
	if tracks, err := t.planner.Tracks(ctx); err == nil {
		for _, tr := range tracks {
			if tr.ID == s.TrackID {
				name = tr.Name
			}
		}
	}
	return newSessionView(s, name, t.loc)
}

// change reports the sessions a drop updated. requested is the placement asked
// for session id, compared with what the resolver allowed.
func (t *tools) change(ctx context.Context, updated []schedule.Session, id string, requested timeslot.Timeslot) changeView {
	cv := changeView{Changed: len(updated) > 0, Sessions: make([]sessionView, 0, len(updated))}
	if !cv.Changed {
		cv.Note = "the target start is inside another session; nothing changed"
	}
	for _, s := range updated {
		cv.Sessions = append(cv.Sessions, t.view(ctx, s))
		if s.ID == id && !s.Timeslot.Equal(requested) {
			cv.Note = "adjusted to " + s.Timeslot.In(t.loc).String() + " to avoid an overlap"
		}
	}
	return cv
}

func (t *tools) ok(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// fail reports err as a tool error, so the client can read the code and hint.
func (t *tools) fail(err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr := MapError(err, t.loc)
	if apiErr.Code == "INTERNAL" {
		t.logger.Error("mcp tool failed", "error", err)
	}
	data, mErr := json.Marshal(apiErr)
	if mErr != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
