package model

// IntentCategory is the conversational purpose of a user query. Declaration
// order is significant: it is the tie-break order when two intents score
// equally.
type IntentCategory string

const (
	IntentSpendingAnalysis  IntentCategory = "spending_analysis"
	IntentIncomeAnalysis    IntentCategory = "income_analysis"
	IntentSettlement        IntentCategory = "settlement"
	IntentCategoryBreakdown IntentCategory = "category_breakdown"
	IntentUnpaidBills       IntentCategory = "unpaid_bills"
	IntentTimeline          IntentCategory = "timeline"
	IntentComparison        IntentCategory = "comparison"
	IntentAnomaly           IntentCategory = "anomaly"
	IntentSimulation        IntentCategory = "simulation"
	IntentDecision          IntentCategory = "decision"
	IntentFilter            IntentCategory = "filter"
	IntentSummary           IntentCategory = "summary"
	IntentSavings           IntentCategory = "savings"
	IntentRecurring         IntentCategory = "recurring"
	IntentUnknown           IntentCategory = "unknown"
)

// IntentSource identifies which classifier produced an Intent.
type IntentSource string

const (
	SourceRules       IntentSource = "rules"
	SourceExternalNLU IntentSource = "external-nlu"
)

// ClarificationOption is one follow-up choice offered for an ambiguous query.
type ClarificationOption struct {
	Label        string
	TargetIntent IntentCategory
	RefinedQuery string
}

// Clarification is the follow-up question payload attached to an ambiguous
// intent resolution.
type Clarification struct {
	Question string
	Options  []ClarificationOption
}

// Intent is the result of resolving a single query. Computed fresh per
// query, never persisted.
type Intent struct {
	Category           IntentCategory
	Confidence         float64
	NeedsClarification bool
	MatchedKeyword     string
	Source             IntentSource
	Clarification      *Clarification // set only by the ambiguity gate
}

// AnalyticCategory is the kind of computation or visualization a query
// calls for.
type AnalyticCategory string

const (
	AnalyticGreeting         AnalyticCategory = "GREETING"
	AnalyticTransactionList  AnalyticCategory = "TRANSACTION_LIST"
	AnalyticTrendAnalysis    AnalyticCategory = "TREND_ANALYSIS"
	AnalyticMonthlyAnalysis  AnalyticCategory = "MONTHLY_ANALYSIS"
	AnalyticComparison       AnalyticCategory = "COMPARISON"
	AnalyticExpenseBreakdown AnalyticCategory = "EXPENSE_BREAKDOWN"
	AnalyticProfitAnalysis   AnalyticCategory = "PROFIT_ANALYSIS"
	AnalyticAnomalyDetection AnalyticCategory = "ANOMALY_DETECTION"
	AnalyticSalesIncome      AnalyticCategory = "SALES_INCOME"
	AnalyticPrediction       AnalyticCategory = "PREDICTION"
	AnalyticSummary          AnalyticCategory = "SUMMARY"
)
