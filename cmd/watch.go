/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephgoksu/tasklist/internal/storage"
	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/ui"
	"github.com/josephgoksu/tasklist/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the filtered list every time it changes",
	Long: `Keep running and print the filtered task list whenever another tasklist
process changes it. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, backend, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	loc, ok := backend.(storage.Locator)
	if !ok || loc.Path(s.Key()) == "" {
		return errors.New("watch needs on-disk storage")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(s, watch.Config{Path: loc.Path(s.Key())})
	if err != nil {
		return err
	}

	render := func(state store.State) {
		if isJSON() {
			_ = printJSON(cmd, state.Filtered())
			return
		}
		sty := ui.NewStyles(state.Theme)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.RenderFilterBar(state.Filters, sty))
		if tasks := state.Filtered(); len(tasks) == 0 {
			fmt.Fprintln(out, ui.EmptyMessage)
		} else {
			fmt.Fprint(out, ui.TaskTable(tasks, sty, 40).Render())
		}
		fmt.Fprintln(out, ui.RenderSummary(task.Summarize(state.Tasks), sty))
		fmt.Fprintln(out)
	}

	render(s.Snapshot())
	id := s.AddListener(render)
	defer s.RemoveListener(id)

	return w.Run(ctx)
}
