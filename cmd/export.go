/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/transfer"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tasks to a JSON or YAML file",
	Long: `Write the task list to stdout or a file. The format follows the file
extension unless --format is given.

Examples:
  tasklist export -o backup.json
  tasklist export --format yaml > tasks.yaml
  tasklist export --filtered -o urgent.yml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringP("format", "f", "", "json or yaml (default: from extension, else json)")
	exportCmd.Flags().Bool("filtered", false, "export only tasks passing the saved filters")
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatArg, _ := cmd.Flags().GetString("format")
	filtered, _ := cmd.Flags().GetBool("filtered")

	format := transfer.FormatFromPath(output, transfer.FormatJSON)
	if formatArg != "" {
		f, err := transfer.ParseFormat(formatArg)
		if err != nil {
			return err
		}
		format = f
	}

	return withStore(func(s *store.Store) error {
		var tasks []task.Task
		if filtered {
			tasks = s.FilteredTasks()
		} else {
			tasks = s.Tasks()
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		if err := transfer.Export(w, tasks, format); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if output != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), output)
		}
		return nil
	})
}
