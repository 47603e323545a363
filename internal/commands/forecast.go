package commands

import (
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/forecast"
)

func newForecastCommand() *cobra.Command {
	var repoDir string
	var days int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project near-future income and expense from history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(repoDir, days)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().IntVar(&days, "days", 0, "forecast horizon in days (default from config)")

	return cmd
}

func runForecast(dir string, days int) error {
	a, err := loadApp(dir)
	if err != nil {
		return err
	}

	snapshot, err := a.svc.Load()
	if err != nil {
		return err
	}

	if days <= 0 {
		days = a.horizonDays()
	}

	series, err := forecast.Forecast(forecast.BuildDaily(snapshot.Transactions), days)
	if err != nil {
		return err
	}

	printForecast(series)
	return nil
}
