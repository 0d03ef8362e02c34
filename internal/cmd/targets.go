package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/appbridge/internal/config"
	"github.com/xdg/appbridge/internal/term"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List configured application identities",
	Long: `List the application identities exec tries, in order.

Edit the targets key of the configuration file to change the list.`,
	Args: cobra.NoArgs,
	RunE: runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	for i, target := range cfg.Targets {
		term.Printf("%d. %s\n", i+1, target)
	}
	return nil
}
