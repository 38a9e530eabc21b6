package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasklist/internal/config"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// setupTestEnv isolates config lookup and storage in a temp dir and
// returns the data directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	viper.Reset()
	bindFlags()
	appConfig = nil
	t.Cleanup(func() {
		viper.Reset()
		bindFlags()
		appConfig = nil
	})

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", "")
	lipgloss.SetColorProfile(termenv.Ascii)

	dataDir := filepath.Join(dir, "data")
	viper.Set(config.KeyStoragePath, dataDir)
	return dataDir
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with args and returns everything it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return b.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "tasklist %s\n%s", strings.Join(args, " "), out)
	return out
}

func addJSON(t *testing.T, args ...string) task.Task {
	t.Helper()
	out := mustRun(t, append(append([]string{"add"}, args...), "--json")...)
	var created task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &created), out)
	return created
}

func listJSON(t *testing.T, args ...string) []task.Task {
	t.Helper()
	out := mustRun(t, append(append([]string{"list"}, args...), "--json")...)
	var tasks []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks), out)
	return tasks
}

func titles(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
