package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
	"github.com/conference-hall/hall/internal/tui/view"
)

func (a *App) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Create, edit and move sessions",
		Long: `Manage sessions. A session is referenced by its id or a unique id prefix,
as printed by 'hall show -v'.`,
	}
	cmd.AddCommand(
		a.sessionAddCmd(),
		a.sessionEditCmd(),
		a.sessionMoveCmd(),
		a.sessionResizeCmd(),
		a.sessionSwapCmd(),
		a.sessionRemoveCmd(),
		a.sessionShowCmd(),
	)
	return cmd
}

func (a *App) sessionAddCmd() *cobra.Command {
	var (
		trackRef string
		dayRef   string
		start    string
		end      string
		name     string
		language string
		color    string
		emojis   []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a session to a track",
		Long: `Add a session to a track. The session must not overlap another session
on the same track; back to back sessions are fine.

Examples:
  hall session add --track "Room A" --start 09:00 --end 10:00 --name "Opening keynote"
  hall session add -t "Room B" -d 2 --start 12:30 --end 13:30 --name Lunch --color orange --emoji 🍽`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			day, err := a.day(dayRef)
			if err != nil {
				return err
			}
			ts, err := timeslot.Between(day.Date, start, end)
			if err != nil {
				return err
			}
			c, err := schedule.ParseColor(color)
			if err != nil {
				return err
			}

			s, err := a.planner.AddSession(context.Background(), planner.AddRequest{
				TrackRef: trackRef,
				Timeslot: ts,
				Name:     name,
				Language: language,
				Color:    c,
				Emojis:   cleanEmojis(emojis),
			})
			if err != nil {
				return err
			}
			a.printChange(cmd.OutOrStdout(), "Added", s, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&trackRef, "track", "t", "", "Track name or id (required)")
	cmd.Flags().StringVarP(&dayRef, "day", "d", "", "Event day: number, weekday or YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "Start time HH:MM (required)")
	cmd.Flags().StringVar(&end, "end", "", "End time HH:MM (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Session name")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Session language, e.g. en")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Color: "+colorNames())
	cmd.Flags().StringSliceVarP(&emojis, "emoji", "e", nil, "Emoji shown before the name (repeatable)")
	_ = cmd.MarkFlagRequired("track")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *App) sessionEditCmd() *cobra.Command {
	var (
		name     string
		language string
		color    string
		emojis   []string
	)

	cmd := &cobra.Command{
		Use:   "edit SESSION",
		Short: "Change the name, language, color or emojis of a session",
		Example: `  hall session edit 3f2a --name "Closing keynote"
  hall session edit 3f2a --emoji "" --color gray`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var d planner.Details
			if flags.Changed("name") {
				d.Name = &name
			}
			if flags.Changed("lang") {
				d.Language = &language
			}
			if flags.Changed("color") {
				c, err := schedule.ParseColor(color)
				if err != nil {
					return err
				}
				d.Color = &c
			}
			if flags.Changed("emoji") {
				cleaned := cleanEmojis(emojis)
				d.Emojis = &cleaned
			}
			if d == (planner.Details{}) {
				return errors.New("nothing to change: pass --name, --lang, --color or --emoji")
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			s, err := a.planner.UpdateDetails(context.Background(), args[0], d)
			if err != nil {
				return err
			}
			a.printChange(cmd.OutOrStdout(), "Updated", s, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Session name")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Session language")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Color: "+colorNames())
	cmd.Flags().StringSliceVarP(&emojis, "emoji", "e", nil, "Emojis, replaces the current ones")
	return cmd
}

func (a *App) sessionMoveCmd() *cobra.Command {
	var (
		trackRef string
		dayRef   string
		start    string
	)

	cmd := &cobra.Command{
		Use:   "move SESSION",
		Short: "Move a session, keeping its duration",
		Long: `Move a session to a new start time, optionally on another track or day.

The session keeps its duration unless the next session on the target track
starts earlier, in which case it is shortened to end there. Moving onto a
time already taken by another session changes nothing.

Examples:
  hall session move 3f2a --start 14:00
  hall session move 3f2a --track "Room B" --start 10:30 --day 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			before, err := a.planner.ResolveSession(ctx, args[0])
			if err != nil {
				return err
			}

			day, err := a.sessionDay(before, dayRef, cmd.Flags().Changed("day"))
			if err != nil {
				return err
			}
			at, err := timeslot.At(day.Date, start)
			if err != nil {
				return err
			}

			updated, err := a.planner.MoveSession(ctx, before.ID, trackRef, at)
			if err != nil {
				return err
			}
			requested := before
			requested.Timeslot = timeslot.MoveStart(before.Timeslot, at)
			return a.printUpdates(cmd.OutOrStdout(), "Moved", updated, &requested)
		},
	}

	cmd.Flags().StringVarP(&trackRef, "track", "t", "", "Target track name or id (default: current track)")
	cmd.Flags().StringVarP(&dayRef, "day", "d", "", "Target event day (default: current day)")
	cmd.Flags().StringVar(&start, "start", "", "New start time HH:MM (required)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func (a *App) sessionResizeCmd() *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "resize SESSION",
		Short: "Change the end time of a session",
		Long: `Change the end time of a session. The start never moves.

The end is clamped to the start of the next session on the track, and a
session is never shorter than 5 minutes.

Example:
  hall session resize 3f2a --end 11:15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			before, err := a.planner.ResolveSession(ctx, args[0])
			if err != nil {
				return err
			}
			day, err := a.sessionDay(before, "", false)
			if err != nil {
				return err
			}
			at, err := timeslot.At(day.Date, end)
			if err != nil {
				return err
			}

			updated, err := a.planner.ResizeSession(ctx, before.ID, at)
			if err != nil {
				return err
			}
			requested := before
			requested.Timeslot.End = at
			return a.printUpdates(cmd.OutOrStdout(), "Resized", updated, &requested)
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "New end time HH:MM (required)")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *App) sessionSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap SESSION SESSION",
		Short: "Exchange the track and time of two sessions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			updated, err := a.planner.SwapSessions(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printUpdates(cmd.OutOrStdout(), "Swapped", updated, nil)
		},
	}
}

func (a *App) sessionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm SESSION",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			s, err := a.planner.DeleteSession(context.Background(), args[0])
			if err != nil {
				return err
			}
			a.printChange(cmd.OutOrStdout(), "Deleted", s, "")
			return nil
		},
	}
}

func (a *App) sessionShowCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show SESSION",
		Short: "Show the details of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			s, err := a.planner.ResolveSession(ctx, args[0])
			if err != nil {
				return err
			}
			tracks, err := a.planner.Tracks(ctx)
			if err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}

			md := view.SessionMarkdown(s, trackName(tracks, s.TrackID), loc)
			out := cmd.OutOrStdout()
			if raw || a.noColor {
				_, _ = io.WriteString(out, md)
				return nil
			}
			rendered, err := view.RenderMarkdown(md, termWidth(), true)
			if err != nil {
				return err
			}
			_, _ = io.WriteString(out, rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	return cmd
}

// sessionDay returns the day a session is edited on: the referenced day when
// set, otherwise the day the session currently starts on.
func (a *App) sessionDay(s schedule.Session, ref string, changed bool) (schedule.Day, error) {
	if changed {
		return a.day(ref)
	}
	loc, err := a.config.Location()
	if err != nil {
		return schedule.Day{}, err
	}
	return schedule.NewDay(s.Timeslot.Start.In(loc), loc, a.config.Schedule.DayStart, a.config.Schedule.DayEnd)
}

// printUpdates reports the sessions a move, resize or swap changed.
// requested, when set, is the placement the user asked for.
func (a *App) printUpdates(w io.Writer, verb string, updated []schedule.Session, requested *schedule.Session) error {
	if len(updated) == 0 {
		_, _ = fmt.Fprintln(w, formatWarning("Nothing changed: the target time is taken by another session."))
		return nil
	}
	for _, s := range updated {
		note := ""
		if requested != nil && s.ID == requested.ID {
			note = PlacementNote(*requested, s)
		}
		a.printChange(w, verb, s, note)
	}
	return nil
}

func (a *App) printChange(w io.Writer, verb string, s schedule.Session, note string) {
	ts := s.Timeslot
	if loc, err := a.config.Location(); err == nil {
		ts = ts.In(loc)
	}
	line := fmt.Sprintf("%s %s %s %s %s", verb,
		formatSession(s.Color, s.Title()), ts.Start.Format("Mon Jan 2"), ts, formatMuted(ShortID(s.ID)))
	if note != "" {
		line += " " + note
	}
	_, _ = fmt.Fprintln(w, line)
}

func trackName(tracks []schedule.Track, id string) string {
	for _, t := range tracks {
		if t.ID == id {
			return t.Name
		}
	}
	return id
}

func colorNames() string {
	names := make([]string, 0, len(schedule.Colors()))
	for _, c := range schedule.Colors() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// cleanEmojis drops blank entries so that --emoji "" clears the list.
func cleanEmojis(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
