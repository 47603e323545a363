package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/settle"
)

func newSettleCommand() *cobra.Command {
	var repoDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Compute a debt settlement plan over unsettled transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(repoDir, asJSON)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")

	return cmd
}

func runSettle(dir string, asJSON bool) error {
	a, err := loadApp(dir)
	if err != nil {
		return err
	}

	snapshot, err := a.svc.Load()
	if err != nil {
		return err
	}

	plan := settle.Solve(snapshot.Unsettled(), snapshot.Participants())

	if asJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling plan: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printPlan(plan)
	return nil
}
