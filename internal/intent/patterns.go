package intent

import "github.com/finsight-dev/finsight/internal/model"

// Pattern weights. A keyword hit is near-certain, a semantic phrase hit is
// strong, and a partial token overlap with a keyword is weak.
const (
	weightKeyword  = 0.9
	weightSemantic = 0.7
	weightPartial  = 0.5
)

// patternSet holds the match patterns owned by one intent. Keywords and
// semantic phrases are matched as substrings of the normalized query;
// ambiguous words only ever trigger the clarification gate, never scoring.
type patternSet struct {
	intent    model.IntentCategory
	keywords  []string
	semantic  []string
	ambiguous []string
}

// taxonomy is the fixed intent table. Order matters: when two intents score
// equally, the earlier entry wins.
var taxonomy = []patternSet{
	{
		intent:    model.IntentSpendingAnalysis,
		keywords:  []string{"spend", "spent", "spending on", "paid for"},
		semantic:  []string{"where did my money go", "what did i buy", "how much went out"},
		ambiguous: []string{"spending", "expenses"},
	},
	{
		intent:    model.IntentIncomeAnalysis,
		keywords:  []string{"income", "earned", "revenue", "salary"},
		semantic:  []string{"how much did i make", "money coming in"},
		ambiguous: []string{"income"},
	},
	{
		intent:   model.IntentSettlement,
		keywords: []string{"settle", "settlement", "who owes", "owes me", "owe you", "pay back"},
		semantic: []string{"split the bill", "even out the balances", "square up"},
	},
	{
		intent:    model.IntentCategoryBreakdown,
		keywords:  []string{"by category", "breakdown by", "per category"},
		semantic:  []string{"split by type", "grouped by category"},
		ambiguous: []string{"breakdown"},
	},
	{
		intent:   model.IntentUnpaidBills,
		keywords: []string{"unpaid", "outstanding", "overdue", "pending bills"},
		semantic: []string{"bills i have not paid", "still need to pay"},
	},
	{
		intent:   model.IntentTimeline,
		keywords: []string{"timeline", "over time", "history"},
		semantic: []string{"day by day", "week by week"},
	},
	{
		intent:   model.IntentComparison,
		keywords: []string{"compare", "versus", "vs last"},
		semantic: []string{"this month against last month", "more than last"},
	},
	{
		intent:   model.IntentAnomaly,
		keywords: []string{"anomaly", "unusual", "suspicious", "weird"},
		semantic: []string{"out of the ordinary", "strange charges"},
	},
	{
		intent:   model.IntentSimulation,
		keywords: []string{"what if", "simulate", "scenario"},
		semantic: []string{"suppose i spend", "pretend i bought"},
	},
	{
		intent:   model.IntentDecision,
		keywords: []string{"should i", "can i afford", "worth it"},
		semantic: []string{"is it a good idea", "would it be smart"},
	},
	{
		intent:   model.IntentFilter,
		keywords: []string{"show only", "filter", "just the"},
		semantic: []string{"only transactions from", "limit to"},
	},
	{
		intent:   model.IntentSummary,
		keywords: []string{"summary", "overview", "total"},
		semantic: []string{"how am i doing", "big picture"},
	},
	{
		intent:   model.IntentSavings,
		keywords: []string{"save", "savings", "saving"},
		semantic: []string{"put aside", "cut back"},
	},
	{
		intent:   model.IntentRecurring,
		keywords: []string{"recurring", "subscription", "every month"},
		semantic: []string{"repeating payments", "comes out monthly"},
	},
}

// Taxonomy returns the intent category names in declaration order, for
// handing to the external NLU contract.
func Taxonomy() []model.IntentCategory {
	out := make([]model.IntentCategory, 0, len(taxonomy))
	for _, set := range taxonomy {
		out = append(out, set.intent)
	}
	return out
}

// knownCategory reports whether name is part of the taxonomy.
func knownCategory(name string) (model.IntentCategory, bool) {
	for _, set := range taxonomy {
		if string(set.intent) == name {
			return set.intent, true
		}
	}
	return "", false
}
