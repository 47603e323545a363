package intent

import "github.com/finsight-dev/finsight/internal/model"

// clarifications maps each ambiguous trigger word to its follow-up options.
// This registry is static configuration, versioned alongside the taxonomy.
var clarifications = map[string]model.Clarification{
	"spending": {
		Question: "What about your spending would you like to see?",
		Options: []model.ClarificationOption{
			{Label: "Total this month", TargetIntent: model.IntentSpendingAnalysis, RefinedQuery: "how much did i spend this month"},
			{Label: "By category", TargetIntent: model.IntentCategoryBreakdown, RefinedQuery: "spending breakdown by category"},
			{Label: "Spending trend", TargetIntent: model.IntentTimeline, RefinedQuery: "spending over time"},
		},
	},
	"expenses": {
		Question: "Which view of your expenses do you want?",
		Options: []model.ClarificationOption{
			{Label: "Total expenses", TargetIntent: model.IntentSpendingAnalysis, RefinedQuery: "how much did i spend in total"},
			{Label: "Largest expenses", TargetIntent: model.IntentFilter, RefinedQuery: "show only my largest expenses"},
			{Label: "Recurring expenses", TargetIntent: model.IntentRecurring, RefinedQuery: "show my recurring payments"},
		},
	},
	"money": {
		Question: "Do you want to look at money in, money out, or the balance?",
		Options: []model.ClarificationOption{
			{Label: "Money in", TargetIntent: model.IntentIncomeAnalysis, RefinedQuery: "how much income did i receive"},
			{Label: "Money out", TargetIntent: model.IntentSpendingAnalysis, RefinedQuery: "how much did i spend"},
			{Label: "Overall picture", TargetIntent: model.IntentSummary, RefinedQuery: "give me a financial summary"},
		},
	},
	"breakdown": {
		Question: "What should the breakdown cover?",
		Options: []model.ClarificationOption{
			{Label: "Expenses by category", TargetIntent: model.IntentCategoryBreakdown, RefinedQuery: "expense breakdown by category"},
			{Label: "Income by category", TargetIntent: model.IntentIncomeAnalysis, RefinedQuery: "income breakdown by category"},
		},
	},
	"trend": {
		Question: "Which trend are you interested in?",
		Options: []model.ClarificationOption{
			{Label: "Spending trend", TargetIntent: model.IntentTimeline, RefinedQuery: "show my spending over time"},
			{Label: "Income trend", TargetIntent: model.IntentIncomeAnalysis, RefinedQuery: "show my income over time"},
			{Label: "Forecast", TargetIntent: model.IntentSimulation, RefinedQuery: "predict my expenses for next month"},
		},
	},
	"plan": {
		Question: "What kind of plan do you need?",
		Options: []model.ClarificationOption{
			{Label: "Settle debts", TargetIntent: model.IntentSettlement, RefinedQuery: "who owes whom and how do we settle"},
			{Label: "Savings plan", TargetIntent: model.IntentSavings, RefinedQuery: "how much can i save each month"},
		},
	},
	"income": {
		Question: "What about your income?",
		Options: []model.ClarificationOption{
			{Label: "Total income", TargetIntent: model.IntentIncomeAnalysis, RefinedQuery: "how much income did i receive this month"},
			{Label: "Income vs expenses", TargetIntent: model.IntentComparison, RefinedQuery: "compare my income and expenses"},
			{Label: "Income trend", TargetIntent: model.IntentTimeline, RefinedQuery: "show my income over time"},
		},
	},
}

// Clarify returns the registry entry for an ambiguous trigger word.
func Clarify(trigger string) (model.Clarification, bool) {
	c, ok := clarifications[trigger]
	return c, ok
}
