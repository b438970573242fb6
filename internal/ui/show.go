package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conference-hall/hall/internal/schedule"
)

func (a *App) showCmd() *cobra.Command {
	var dayRef string
	var verbose bool
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the schedule of an event day",
		Long: `Display the sessions of one event day grouped by track.

The day defaults to the first event day. It accepts a day number (2),
today, tomorrow, a weekday (friday) or a date (2025-06-12).

Examples:
  hall show
  hall show --day 2 -v
  hall show --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}
			opts := PrintOpts{Location: loc, Verbose: verbose}

			days, err := a.days()
			if err != nil {
				return err
			}
			if !all {
				d, err := a.day(dayRef)
				if err != nil {
					return err
				}
				days = []schedule.Day{d}
			}

			out := cmd.OutOrStdout()
			for i, d := range days {
				agenda, err := a.planner.Agenda(context.Background(), d)
				if err != nil {
					return err
				}
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				if len(agenda.Tracks) == 0 {
					_, _ = fmt.Fprintln(out, "No tracks yet. Add one with 'hall track add NAME'.")
					return nil
				}
				PrintAgenda(out, agenda, opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dayRef, "day", "d", "", "Event day: number, weekday or YYYY-MM-DD")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles and session ids")
	cmd.Flags().BoolVar(&all, "all", false, "Show every event day")
	return cmd
}
