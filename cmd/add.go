/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/util"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to the list. The title is required; priority defaults
to medium and status to todo.

Examples:
  tasklist add "Buy milk"
  tasklist add "File taxes" -p high -d "Before April 15"
  tasklist add "Refactor parser" -s in-progress`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("description", "d", "", "task description")
	addCmd.Flags().StringP("priority", "p", string(task.DefaultPriority), "priority: high, medium or low")
	addCmd.Flags().StringP("status", "s", string(task.DefaultStatus), "status: todo, in-progress or completed")
	registerEnumCompletions(addCmd, false)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	description, _ := cmd.Flags().GetString("description")
	priorityArg, _ := cmd.Flags().GetString("priority")
	statusArg, _ := cmd.Flags().GetString("status")

	priority, err := task.ParsePriority(priorityArg)
	if err != nil {
		return err
	}
	status, err := task.ParseStatus(statusArg)
	if err != nil {
		return err
	}

	return withStore(func(s *store.Store) error {
		created, err := s.AddTask(title, description, priority, status)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd, created)
		}
		st := styles(s)
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n", st.Success.Render("✓"), st.Subtle.Render(util.ShortID(created.ID, 0)), created.Title)
		return nil
	})
}
