package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) trackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "track",
		Aliases: []string{"tracks"},
		Short:   "Manage tracks (rooms)",
	}
	cmd.AddCommand(a.trackAddCmd(), a.trackListCmd(), a.trackRenameCmd(), a.trackRemoveCmd())
	return cmd
}

func (a *App) trackAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a track after the last one",
		Example: `  hall track add "Main hall"
  hall track add "Workshop room"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			t, err := a.planner.AddTrack(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created track %s %s\n", formatTrack(t.Name), formatMuted(ShortID(t.ID)))
			return nil
		},
	}
}

func (a *App) trackListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracks in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			tracks, err := a.planner.Tracks(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				_, _ = fmt.Fprintln(out, "No tracks yet. Add one with 'hall track add NAME'.")
				return nil
			}
			for _, t := range tracks {
				_, _ = fmt.Fprintf(out, "  %d. %s  %s\n", t.Position+1, formatTrack(t.Name), formatMuted(ShortID(t.ID)))
			}
			return nil
		},
	}
}

func (a *App) trackRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename TRACK NAME",
		Short: "Rename a track",
		Long: `Rename a track. TRACK is a track name, id or unique id prefix.

Example:
  hall track rename "Room A" "Main hall"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			t, err := a.planner.RenameTrack(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed track to %s\n", formatTrack(t.Name))
			return nil
		},
	}
}

func (a *App) trackRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm TRACK",
		Aliases: []string{"remove"},
		Short:   "Remove a track and all of its sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			t, err := a.planner.RemoveTrack(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed track %s\n", formatTrack(t.Name))
			return nil
		},
	}
}
