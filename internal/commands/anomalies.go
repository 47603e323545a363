package commands

import (
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/anomaly"
)

func newAnomaliesCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Flag statistically unusual transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnomalies(repoDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runAnomalies(dir string) error {
	a, err := loadApp(dir)
	if err != nil {
		return err
	}

	snapshot, err := a.svc.Load()
	if err != nil {
		return err
	}

	printAnomalies(anomaly.Detect(snapshot.Transactions, a.anomalyOptions()))
	return nil
}
