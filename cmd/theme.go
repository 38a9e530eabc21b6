/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error { return printTheme(cmd, s) })
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error { return printTheme(cmd, s) })
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			if err := s.ToggleTheme(); err != nil {
				return err
			}
			return printTheme(cmd, s)
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Choose a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(task.ThemeLight), string(task.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		th, err := task.ParseTheme(args[0])
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store) error {
			if err := s.SetTheme(th); err != nil {
				return err
			}
			return printTheme(cmd, s)
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeShowCmd, themeToggleCmd, themeSetCmd)
}

func printTheme(cmd *cobra.Command, s *store.Store) error {
	th := s.Theme()
	if isJSON() {
		return printJSON(cmd, map[string]task.Theme{"theme": th})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Theme: "+styles(s).Header.Render(string(th)))
	return nil
}
