package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/engine"
	"github.com/finsight-dev/finsight/internal/intent"
	"github.com/finsight-dev/finsight/internal/logger"
	"github.com/finsight-dev/finsight/internal/nlu"
	"github.com/finsight-dev/finsight/internal/querylog"
)

func newAskCommand() *cobra.Command {
	var repoDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask a question about your finances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd.Context(), repoDir, args[0], asJSON)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structured response as JSON")

	return cmd
}

func runAsk(ctx context.Context, dir, query string, asJSON bool) error {
	a, err := loadApp(dir)
	if err != nil {
		return err
	}
	ctx = logger.WithContext(ctx, a.log)

	snapshot, err := a.svc.Load()
	if err != nil {
		return err
	}

	resolver := intent.NewResolver(newClassifier(ctx, a))
	eng := engine.New(resolver, a.anomalyOptions(), a.horizonDays())

	resp := eng.Ask(ctx, query, snapshot)

	if asJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling response: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printResponse(resp)
	}

	// Record the query in the audit log; a write failure is a warning,
	// not a command failure.
	entry := querylog.Entry{
		Timestamp:  time.Now().UTC(),
		Query:      query,
		Intent:     string(resp.Intent.Category),
		Confidence: resp.Intent.Confidence,
		Source:     string(resp.Intent.Source),
		Category:   string(resp.Category),
	}
	if err := querylog.Append(a.root, []querylog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write query log: %v\n", err)
	}

	return nil
}

// newClassifier builds the external NLU classifier when one is configured;
// a missing API key or disabled config simply means no escalation.
func newClassifier(ctx context.Context, a *app) nlu.Classifier {
	if !a.cfg.NLU.Enabled || a.env.GeminiAPIKey == "" {
		return nil
	}
	timeout := time.Duration(a.cfg.NLU.TimeoutSeconds) * time.Second
	g, err := nlu.NewGemini(ctx, a.env.GeminiAPIKey, a.cfg.NLU.Model, timeout)
	if err != nil {
		a.log.Warn().Err(err).Msg("external nlu unavailable")
		return nil
	}
	return g
}
