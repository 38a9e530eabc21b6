/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/tasklist/internal/config"
	"github.com/josephgoksu/tasklist/internal/logger"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging and detailed errors.
	verbose bool
	// jsonOutput switches every command to machine-readable output.
	jsonOutput bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "tasklist keeps a personal task list in your terminal.",
	Long: `tasklist is a single-user task list. Tasks have a title, an optional
description, a priority and a status. The list, your filter selection and
your theme are saved locally after every change.

Run "tasklist board" for the interactive view.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(userMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.tasklist/.tasklist.yaml or ~/.tasklist/.tasklist.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of formatted text")

	bindFlags()
}

// bindFlags binds the persistent flags to Viper.
func bindFlags() {
	_ = viper.BindPFlag(config.KeyConfig, rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag(config.KeyJSON, rootCmd.PersistentFlags().Lookup("json"))
}

// initErr is reported by setup so config problems surface as command errors.
var initErr error

func initConfig() {
	initErr = config.Init()
}

// appConfig is loaded once per command execution by setup.
var appConfig *config.AppConfig

func setup(cmd *cobra.Command, args []string) error {
	if initErr != nil {
		return initErr
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.Log.Level
	if cfg.Verbose {
		level = "debug"
	}
	logger.Setup(cmd.ErrOrStderr(), level, cfg.Log.Format)
	logger.SetDir(config.CrashLogDir())
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath(), args)
	return nil
}

// userMessage picks the message shown without --verbose.
func userMessage(err error) string {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return fmt.Sprintf("Error: %v", err)
}
