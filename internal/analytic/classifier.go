// Package analytic maps a query to the kind of computation or chart it
// calls for. Unlike the intent resolver this is not scored: it is a
// priority-ordered cascade where the first matching rule wins, because the
// categories' trigger words overlap ("expense trend" is a trend, not an
// expense breakdown).
package analytic

import (
	"regexp"
	"strings"

	"github.com/finsight-dev/finsight/internal/model"
)

// greetingTokenLimit keeps longer sentences that merely open with "hi"
// from classifying as greetings.
const greetingTokenLimit = 4

var greetingRe = regexp.MustCompile(`^(hi|hello|hey|yo|good (morning|afternoon|evening))\b`)

// rule pairs a predicate with the category it selects.
type rule struct {
	category model.AnalyticCategory
	matches  func(query string, tokens []string) bool
}

// cascade is the ordered rule list. The order is part of the contract:
// reordering it changes which category wins on overlapping trigger words.
var cascade = []rule{
	{model.AnalyticGreeting, func(q string, tokens []string) bool {
		return len(tokens) < greetingTokenLimit && greetingRe.MatchString(q)
	}},
	{model.AnalyticTransactionList, containsAny("transactions", "recent activity", "list my", "latest entries")},
	{model.AnalyticTrendAnalysis, containsAny("trend", "trajectory", "over time", "pattern")},
	{model.AnalyticMonthlyAnalysis, containsAny("monthly", "per month", "each month", "month by month")},
	{model.AnalyticComparison, containsAny("compare", "versus", " vs ", "difference between")},
	{model.AnalyticExpenseBreakdown, containsAny("expense", "spending", "spent", "breakdown", "by category")},
	{model.AnalyticProfitAnalysis, containsAny("profit", "margin", "net position", "earnings")},
	{model.AnalyticAnomalyDetection, containsAny("anomal", "unusual", "suspicious", "outlier", "weird")},
	{model.AnalyticSalesIncome, containsAny("sales", "income", "revenue", "earned")},
	{model.AnalyticPrediction, containsAny("predict", "forecast", "project", "next month", "future")},
}

// Classify returns the analytic category for a query. SUMMARY is the
// default when no rule fires.
func Classify(query string) model.AnalyticCategory {
	normalized := strings.ToLower(strings.TrimSpace(query))
	tokens := strings.Fields(normalized)

	for _, r := range cascade {
		if r.matches(normalized, tokens) {
			return r.category
		}
	}
	return model.AnalyticSummary
}

func containsAny(terms ...string) func(string, []string) bool {
	return func(q string, _ []string) bool {
		for _, term := range terms {
			if strings.Contains(q, term) {
				return true
			}
		}
		return false
	}
}
