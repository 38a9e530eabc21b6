/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/ui"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks through the saved filters",
	Long: `List tasks in the order they were added.

By default the saved filters (see "tasklist filter") apply. --priority and
--status narrow this one listing without changing the saved filters, and
--all ignores the saved filters entirely.

Examples:
  tasklist list
  tasklist list -p high
  tasklist list --all --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("priority", "p", "", "show only this priority (all, high, medium, low)")
	listCmd.Flags().StringP("status", "s", "", "show only this status (all, todo, in-progress, completed)")
	listCmd.Flags().BoolP("all", "a", false, "ignore the saved filters")
	registerEnumCompletions(listCmd, true)
}

// listFilters returns the filters a listing should apply.
func listFilters(cmd *cobra.Command, saved task.FilterState) (task.FilterState, error) {
	f := saved
	if all, _ := cmd.Flags().GetBool("all"); all {
		f = task.DefaultFilters()
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p, err := task.ParsePriorityFilter(v)
		if err != nil {
			return f, err
		}
		f.Priority = p
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		st, err := task.ParseStatusFilter(v)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.Store) error {
		snap := s.Snapshot()
		filters, err := listFilters(cmd, snap.Filters)
		if err != nil {
			return err
		}
		tasks := task.FilteredTasks(snap.Tasks, filters)

		if isJSON() {
			return printJSON(cmd, tasks)
		}

		st := ui.NewStyles(snap.Theme)
		if filters.Active() {
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderFilterBar(filters, st))
		}
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.EmptyMessage)
			if len(snap.Tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Add one with: tasklist add \"Your task\"")
			}
			return nil
		}

		maxWidth := 0
		if !isVerbose() {
			maxWidth = max(ui.TerminalWidth(100)/3, 20)
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.TaskTable(tasks, st, maxWidth).Render())
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSummary(task.Summarize(tasks), st))
		return nil
	})
}
