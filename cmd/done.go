/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between completed and todo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			t, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}
			if err := s.ToggleCompletion(t.ID); err != nil {
				return err
			}
			toggled, _ := s.Task(t.ID)
			if isJSON() {
				return printJSON(cmd, toggled)
			}
			st := styles(s)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", st.Checkbox(toggled), toggled.Title, st.StatusBadge(toggled.Status))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
