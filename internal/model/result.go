package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is one point-to-point payment in a debt-simplification plan.
// It is a transient solver output, not a ledger record.
type Settlement struct {
	From   string
	To     string
	Amount decimal.Decimal // always positive
}

// Severity ranks how far an anomalous transaction deviates from baseline.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Anomaly flags one statistically unusual transaction.
type Anomaly struct {
	TransactionID  string
	Description    string
	ObservedAmount decimal.Decimal
	BaselineAmount decimal.Decimal
	DeviationRatio decimal.Decimal
	Severity       Severity
}

// TrendDirection summarizes the sign of a fitted trend slope.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// ForecastSeries is a near-future projection of daily income and expense.
type ForecastSeries struct {
	HorizonDays      int
	ProjectedDates   []time.Time
	ProjectedIncome  []decimal.Decimal
	ProjectedExpense []decimal.Decimal
	IncomeTrend      TrendDirection
	ExpenseTrend     TrendDirection
}
