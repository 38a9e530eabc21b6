/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/ui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its id or a unique id prefix. In an interactive
terminal you are asked to confirm unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "delete without asking")
}

func runDelete(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	return withStore(func(s *store.Store) error {
		t, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}

		if !yes && !isJSON() && ui.IsInteractive() {
			if !confirm(cmd, fmt.Sprintf("Delete %q? [y/N] ", t.Title)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := s.DeleteTask(t.ID); err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd, map[string]string{"deleted": t.ID})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.Title)
		return nil
	})
}
