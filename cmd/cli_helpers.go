package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/josephgoksu/tasklist/internal/config"
	"github.com/josephgoksu/tasklist/internal/storage"
	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/ui"
	"github.com/josephgoksu/tasklist/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

// cfg returns the loaded config, loading it if a test bypassed setup.
func cfg() (*config.AppConfig, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	return config.Load()
}

// openStore opens the configured storage and loads the persisted state.
// The returned close function releases the storage.
func openStore() (*store.Store, storage.Storage, func(), error) {
	c, err := cfg()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := storage.Open(storage.Options{Backend: c.Storage.Backend, Dir: c.Storage.Path})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	s := store.New(st, store.WithKey(c.Storage.Key), store.WithLogger(slog.Default()))
	s.Load()
	return s, st, func() { _ = st.Close() }, nil
}

// withStore runs fn against a freshly loaded store.
func withStore(fn func(s *store.Store) error) error {
	s, _, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(s)
}

// resolveTask finds the task whose id is, or uniquely starts with, arg.
func resolveTask(s *store.Store, arg string) (task.Task, error) {
	tasks := s.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	id, err := util.ResolveID(ids, arg)
	if err != nil {
		return task.Task{}, err
	}
	t, _ := s.Task(id)
	return t, nil
}

func styles(s *store.Store) ui.Styles {
	return ui.NewStyles(s.Theme())
}

// confirm asks a yes/no question on the command's input. Anything but y/yes is no.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// optionCompletions turns picker options into shell completions ("value\tlabel").
// withAll prepends the "all" selector used by filters.
func optionCompletions[T ~string](opts []task.Option[T], withAll bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(opts)+1)
		if withAll {
			out = append(out, "all\tAll")
		}
		for _, o := range opts {
			out = append(out, string(o.Value)+"\t"+o.Label)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerEnumCompletions wires priority and status completion onto cmd's flags.
func registerEnumCompletions(cmd *cobra.Command, withAll bool) {
	_ = cmd.RegisterFlagCompletionFunc("priority", optionCompletions(task.PriorityOptions, withAll))
	_ = cmd.RegisterFlagCompletionFunc("status", optionCompletions(task.StatusOptions, withAll))
}
