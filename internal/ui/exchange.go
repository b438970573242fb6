package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conference-hall/hall/internal/db"
	"github.com/conference-hall/hall/internal/exchange"
)

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export the schedule as YAML",
		Long: `Write every track and session as a YAML document, to FILE or stdout.

Times are written as wall clock in the event timezone.

Examples:
  hall export > schedule.yaml
  hall export schedule.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := exchange.Export(context.Background(), a.repo, w, a.config.Event.Name, loc); err != nil {
				return err
			}
			if len(args) == 1 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported schedule to %s\n", args[0])
			}
			return nil
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a schedule from YAML or another database",
		Long: `Merge a schedule into the current one.

FILE is a YAML document written by 'hall export', or another hall database
(.db). Tracks are matched by id then name. Sessions with a known id are
updated, others are created. The import stops at the first session that
would overlap another one on its track.

Examples:
  hall import schedule.yaml
  hall import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			ctx := context.Background()
			var r io.Reader
			if isDatabase(sourcePath) {
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
				buf, err := exportDatabase(ctx, sourcePath, a.config.Event.Name)
				if err != nil {
					return err
				}
				r = buf
			} else {
				f, err := os.Open(sourcePath)
				if err != nil {
					return fmt.Errorf("opening %s: %w", sourcePath, err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			sum, err := exchange.Import(ctx, a.repo, r, loc)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported from %s: %d tracks created, %d sessions created, %d updated\n",
				sourcePath, sum.TracksCreated, sum.SessionsCreated, sum.SessionsUpdated)
			return nil
		},
	}
}

// exportDatabase renders the schedule stored in another database as a document.
// Times are written in UTC, so the source timezone does not matter.
func exportDatabase(ctx context.Context, path, event string) (*bytes.Buffer, error) {
	src, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = src.Close() }()

	var buf bytes.Buffer
	if err := exchange.Export(ctx, src, &buf, event, nil); err != nil {
		return nil, fmt.Errorf("reading source database: %w", err)
	}
	return &buf, nil
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return filepath.Clean(abs), nil
}
