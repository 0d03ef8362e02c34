// Package cmd implements the CLI commands for appbridge.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/appbridge/internal/clog"
	"github.com/xdg/appbridge/internal/term"
	"github.com/xdg/appbridge/internal/version"
)

var (
	debugFlag  bool
	silentFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "appbridge",
	Short: "Run automation scripts inside a desktop application",
	Long: `appbridge executes automation scripts inside a running desktop creative
application (Adobe InDesign by default) through the OS automation host.

Several installed versions of the application can be listed as targets. They
are tried in order until one answers; a genuine script error stops the search
and is reported as-is.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupOutput,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "s", false, "suppress normal output")
}

// setupOutput applies the global flags before any command runs. File
// logging is configured later, once the configuration has been loaded.
func setupOutput(cmd *cobra.Command, args []string) error {
	term.SetSilent(silentFlag)
	if debugFlag {
		clog.SetLevel(clog.LevelDebug)
	}
	return nil
}

// Execute runs the root command and returns any error.
func Execute() error {
	defer func() { _ = clog.Close() }()
	return rootCmd.Execute()
}
