package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"obshook/pkg/hookconfig"
)

var extraConfigFile string

var rootCmd = &cobra.Command{
	Use:   "obshook",
	Short: "Keep OBS webhook mappings in sync with source repositories",
	Long: `Obshook reconciles the webhook mapping for an OBS package against the
remote webhook management service. It ensures the service holds exactly one
mapping for the package's repository and branch, creating or updating it as
needed, and re-triggers the hook so the package is rebuilt.

Credentials and the service endpoint are read from /etc/obs/services/webhook,
~/.obs/webhook, and the process environment, in that order of priority.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&extraConfigFile, "config", "c", "", "Path to an additional configuration file (highest-priority file)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(initCmd)
}

// loadSettings resolves the service settings from the default files, an
// optional extra file from --config, and the environment.
func loadSettings() (hookconfig.Settings, error) {
	paths := hookconfig.DefaultPaths()
	if extraConfigFile != "" {
		paths = append(paths, extraConfigFile)
	}
	return hookconfig.Resolve(paths, os.LookupEnv)
}

// newLogger returns the diagnostic logger. Debug output is only emitted
// when the DEBUG setting resolves true.
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
