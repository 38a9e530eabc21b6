/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"update"},
	Short:   "Change fields of a task",
	Long: `Change the title, description, priority or status of a task.
Only the flags you pass are changed.

Examples:
  tasklist edit 3f2b -p low
  tasklist edit 3f2b --title "Buy oat milk" --description ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description (empty clears it)")
	editCmd.Flags().StringP("priority", "p", "", "new priority: high, medium or low")
	editCmd.Flags().StringP("status", "s", "", "new status: todo, in-progress or completed")
	registerEnumCompletions(editCmd, false)
}

// updateFromFlags builds a TaskUpdate from the flags the user actually set.
func updateFromFlags(cmd *cobra.Command) (task.TaskUpdate, error) {
	var upd task.TaskUpdate
	flags := cmd.Flags()
	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		upd.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		upd.Description = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p, err := task.ParsePriority(v)
		if err != nil {
			return upd, err
		}
		upd.Priority = &p
	}
	if flags.Changed("status") {
		v, _ := flags.GetString("status")
		st, err := task.ParseStatus(v)
		if err != nil {
			return upd, err
		}
		upd.Status = &st
	}
	return upd, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	upd, err := updateFromFlags(cmd)
	if err != nil {
		return err
	}
	if upd.Empty() {
		return errors.New("nothing to change: pass --title, --description, --priority or --status")
	}

	return withStore(func(s *store.Store) error {
		t, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		if err := s.UpdateTask(t.ID, upd); err != nil {
			return err
		}
		updated, _ := s.Task(t.ID)
		if isJSON() {
			return printJSON(cmd, updated)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s\n", styles(s).Success.Render("✓"), updated.Title)
		return nil
	})
}
