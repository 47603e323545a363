package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/settle"
)

func newBalancesCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show each participant's net position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalances(repoDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runBalances(dir string) error {
	a, err := loadApp(dir)
	if err != nil {
		return err
	}

	snapshot, err := a.svc.Load()
	if err != nil {
		return err
	}

	participants := snapshot.Participants()
	if len(participants) == 0 {
		fmt.Println("no participants in the ledger")
		return nil
	}

	balances := settle.Balances(snapshot.Unsettled(), participants)
	w := newTabWriter()
	for _, name := range participants {
		fmt.Fprintf(w, "%s\t%s\n", name, balances[name].StringFixed(2))
	}
	return w.Flush()
}
