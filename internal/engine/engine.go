// Package engine binds the intent resolver, analytic classifier, and the
// deterministic analytics into one query pipeline. It is pure over its
// inputs: each Ask computes everything fresh from the snapshot it is
// handed, so concurrent queries against the same snapshot need no
// coordination.
package engine

import (
	"context"

	"github.com/finsight-dev/finsight/internal/analytic"
	"github.com/finsight-dev/finsight/internal/anomaly"
	"github.com/finsight-dev/finsight/internal/forecast"
	"github.com/finsight-dev/finsight/internal/intent"
	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/logger"
	"github.com/finsight-dev/finsight/internal/model"
	"github.com/finsight-dev/finsight/internal/settle"
)

// transactionListLimit caps the TRANSACTION_LIST result size.
const transactionListLimit = 20

// Engine answers free-text queries over a ledger snapshot.
type Engine struct {
	resolver    *intent.Resolver
	anomalyOpts anomaly.Options
	horizonDays int
}

// New creates an Engine. horizonDays is the default forecast horizon.
func New(resolver *intent.Resolver, anomalyOpts anomaly.Options, horizonDays int) *Engine {
	return &Engine{
		resolver:    resolver,
		anomalyOpts: anomalyOpts,
		horizonDays: horizonDays,
	}
}

// Response is the structured answer to one query. Exactly which result
// fields are populated depends on the analytic category; the presentation
// layer decides how to render them.
type Response struct {
	Query    string
	Intent   model.Intent
	Category model.AnalyticCategory
	Skipped  int // malformed records excluded from the computation

	Summary      *Summary
	Breakdown    []CategoryTotal
	Monthly      []MonthTotal
	Comparison   *Comparison
	Transactions []model.Transaction
	Plan         *settle.Plan
	Anomalies    []model.Anomaly
	Forecast     *model.ForecastSeries
}

// Ask resolves the query's intent and analytic category, runs the matching
// computation over the snapshot, and returns the structured result. It
// never fails for sparse data; the response just carries empty results.
func (e *Engine) Ask(ctx context.Context, query string, snapshot *ledger.Snapshot) Response {
	log := logger.FromContext(ctx)

	resolved := e.resolver.Resolve(ctx, query)
	category := analytic.Classify(query)

	log.Debug().
		Str("intent", string(resolved.Category)).
		Float64("confidence", resolved.Confidence).
		Str("category", string(category)).
		Msg("query classified")

	valid, skipped := partitionValid(snapshot.Transactions)
	resp := Response{
		Query:    query,
		Intent:   resolved,
		Category: category,
		Skipped:  skipped + snapshot.Skipped,
	}

	// A clarification round trip needs no analytics.
	if resolved.NeedsClarification && resolved.Clarification != nil {
		return resp
	}

	switch category {
	case model.AnalyticGreeting:
		// Nothing to compute.
	case model.AnalyticTransactionList:
		resp.Transactions = recent(valid, transactionListLimit)
	case model.AnalyticTrendAnalysis, model.AnalyticPrediction:
		series, err := forecast.Forecast(forecast.BuildDaily(valid), e.horizonDays)
		if err != nil {
			log.Warn().Err(err).Msg("forecast failed")
		}
		resp.Forecast = series
	case model.AnalyticMonthlyAnalysis:
		resp.Monthly = monthly(valid)
	case model.AnalyticComparison:
		resp.Comparison = compare(valid)
	case model.AnalyticExpenseBreakdown:
		resp.Breakdown = breakdown(valid, model.DirectionDebit)
	case model.AnalyticSalesIncome:
		resp.Breakdown = breakdown(valid, model.DirectionCredit)
	case model.AnalyticAnomalyDetection:
		resp.Anomalies = anomaly.Detect(valid, e.anomalyOpts)
	case model.AnalyticProfitAnalysis, model.AnalyticSummary:
		resp.Summary = summarize(valid)
	default:
		resp.Summary = summarize(valid)
	}

	// Settlement is routed by intent rather than analytic category: "who
	// owes whom" reads as a summary-ish query to the cascade but needs the
	// solver.
	if resolved.Category == model.IntentSettlement || resolved.Category == model.IntentUnpaidBills {
		plan := settle.Solve(snapshot.Unsettled(), snapshot.Participants())
		resp.Plan = &plan
	}

	return resp
}
