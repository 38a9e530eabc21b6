/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/ui"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Show or change the saved filters",
	Long: `The saved filters narrow "tasklist list" and the board. They persist
between runs.

Examples:
  tasklist filter set -p high
  tasklist filter set -s in-progress
  tasklist filter clear`,
	Args: cobra.NoArgs,
	RunE: runFilterShow,
}

var filterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved filters",
	Args:  cobra.NoArgs,
	RunE:  runFilterShow,
}

var filterSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or both saved filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd task.FilterUpdate
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			p, err := task.ParsePriorityFilter(v)
			if err != nil {
				return err
			}
			upd.Priority = &p
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			st, err := task.ParseStatusFilter(v)
			if err != nil {
				return err
			}
			upd.Status = &st
		}
		if upd.Priority == nil && upd.Status == nil {
			return errors.New("nothing to change: pass --priority and/or --status")
		}
		return withStore(func(s *store.Store) error {
			if err := s.SetFilter(upd); err != nil {
				return err
			}
			return printFilters(cmd, s)
		})
	},
}

var filterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset both filters to all",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			if err := s.ClearFilters(); err != nil {
				return err
			}
			return printFilters(cmd, s)
		})
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.AddCommand(filterShowCmd, filterSetCmd, filterClearCmd)
	filterSetCmd.Flags().StringP("priority", "p", "", "all, high, medium or low")
	filterSetCmd.Flags().StringP("status", "s", "", "all, todo, in-progress or completed")
	registerEnumCompletions(filterSetCmd, true)
}

func runFilterShow(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.Store) error {
		return printFilters(cmd, s)
	})
}

func printFilters(cmd *cobra.Command, s *store.Store) error {
	f := s.Filters()
	if isJSON() {
		return printJSON(cmd, f)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderFilterBar(f, styles(s)))
	return nil
}
