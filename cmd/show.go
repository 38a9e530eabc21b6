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

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Long:  "Show every field of a task. The id may be abbreviated to any unique prefix.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			t, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd, t)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderTask(t, styles(s)))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
