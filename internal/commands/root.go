package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finsight",
		Short:   "Conversational finance assistant",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAskCommand())
	rootCmd.AddCommand(newSettleCommand())
	rootCmd.AddCommand(newBalancesCommand())
	rootCmd.AddCommand(newAnomaliesCommand())
	rootCmd.AddCommand(newForecastCommand())

	return rootCmd
}
