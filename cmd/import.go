/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/transfer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Add tasks from a JSON or YAML file",
	Long: `Read tasks from a file written by "tasklist export" or from a bare list of
tasks. Tasks whose id already exists are skipped unless --replace is given,
in which case the imported tasks become the whole list. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("format", "f", "", "json or yaml (default: from extension, else json)")
	importCmd.Flags().Bool("replace", false, "replace the whole list with the imported tasks")
}

func runImport(cmd *cobra.Command, args []string) error {
	formatArg, _ := cmd.Flags().GetString("format")
	replace, _ := cmd.Flags().GetBool("replace")

	format := transfer.FormatFromPath(args[0], transfer.FormatJSON)
	if formatArg != "" {
		f, err := transfer.ParseFormat(formatArg)
		if err != nil {
			return err
		}
		format = f
	}

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	tasks, err := transfer.Import(r, format)
	if err != nil {
		return err
	}

	return withStore(func(s *store.Store) error {
		added, err := s.ImportTasks(tasks, replace)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd, map[string]int{"imported": added, "skipped": len(tasks) - added})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d tasks\n", added, len(tasks))
		return nil
	})
}
