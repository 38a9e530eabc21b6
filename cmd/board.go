/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"log/slog"

	"github.com/josephgoksu/tasklist/internal/storage"
	"github.com/josephgoksu/tasklist/internal/ui"
	"github.com/josephgoksu/tasklist/internal/watch"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open a full-screen view of the task list.

Keys:
  ↑/↓ j/k   move            space    toggle completed
  a         add task        x        delete task
  i         start task      +/-      raise/lower priority
  p / s     cycle filters   c        clear filters
  t         toggle theme    q        quit

Changes made by other tasklist processes appear while the board is open.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, backend, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	if loc, ok := backend.(storage.Locator); ok && loc.Path(s.Key()) != "" {
		w, err := watch.New(s, watch.Config{Path: loc.Path(s.Key())})
		if err != nil {
			slog.Warn("live reload disabled", "error", err)
		} else {
			go func() { _ = w.Run(ctx) }()
		}
	}

	return ui.RunBoard(s)
}
