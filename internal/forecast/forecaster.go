// Package forecast projects near-future income and expense from a daily
// history using a least-squares linear trend per series.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// minHistoryDays is the fewest distinct days a projection needs.
const minHistoryDays = 3

// slopeEpsilon is the band inside which a slope counts as flat.
const slopeEpsilon = 0.01

// Forecast projects horizonDays forward from a daily series. Fewer than
// three distinct days of history yields (nil, nil): "not enough data" is an
// expected condition, not an error. A non-positive horizon is a contract
// violation.
func Forecast(daily []model.DailyFlow, horizonDays int) (*model.ForecastSeries, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizonDays must be positive, got %d", horizonDays)
	}

	series := dedupe(daily)
	if len(series) < minHistoryDays {
		return nil, nil
	}

	income := make([]float64, len(series))
	expense := make([]float64, len(series))
	for i, d := range series {
		income[i] = d.Income.InexactFloat64()
		expense[i] = d.Expense.InexactFloat64()
	}

	incomeSlope := slope(income)
	expenseSlope := slope(expense)
	lastIncome := income[len(income)-1]
	lastExpense := expense[len(expense)-1]
	lastDate := series[len(series)-1].Date

	out := &model.ForecastSeries{
		HorizonDays:  horizonDays,
		IncomeTrend:  direction(incomeSlope),
		ExpenseTrend: direction(expenseSlope),
	}
	for day := 1; day <= horizonDays; day++ {
		out.ProjectedDates = append(out.ProjectedDates, lastDate.AddDate(0, 0, day))
		out.ProjectedIncome = append(out.ProjectedIncome, project(lastIncome, incomeSlope, day))
		out.ProjectedExpense = append(out.ProjectedExpense, project(lastExpense, expenseSlope, day))
	}
	return out, nil
}

// project extends the last observed level along the slope, clamped at zero.
func project(last, slope float64, day int) decimal.Decimal {
	v := last + slope*float64(day)
	if v < 0 {
		v = 0
	}
	return decimal.NewFromFloat(v).Round(2)
}

// slope fits a least-squares line over y indexed by 0..n-1 and returns its
// gradient.
func slope(y []float64) float64 {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func direction(s float64) model.TrendDirection {
	switch {
	case s > slopeEpsilon:
		return model.TrendUp
	case s < -slopeEpsilon:
		return model.TrendDown
	default:
		return model.TrendFlat
	}
}

// BuildDaily aggregates transactions into per-day income/expense flows,
// chronologically ordered. Invalid records are ignored.
func BuildDaily(txns []model.Transaction) []model.DailyFlow {
	byDay := make(map[string]*model.DailyFlow)
	for _, t := range txns {
		if !t.Valid() {
			continue
		}
		day := t.Date.Format("2006-01-02")
		df, ok := byDay[day]
		if !ok {
			date := time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
			df = &model.DailyFlow{Date: date, Income: decimal.Zero, Expense: decimal.Zero}
			byDay[day] = df
		}
		if t.Direction == model.DirectionCredit {
			df.Income = df.Income.Add(t.Amount)
		} else {
			df.Expense = df.Expense.Add(t.Amount)
		}
	}

	out := make([]model.DailyFlow, 0, len(byDay))
	for _, df := range byDay {
		out = append(out, *df)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// dedupe merges duplicate dates and returns the series in chronological
// order.
func dedupe(daily []model.DailyFlow) []model.DailyFlow {
	byDay := make(map[string]model.DailyFlow)
	for _, d := range daily {
		key := d.Date.Format("2006-01-02")
		cur, ok := byDay[key]
		if !ok {
			byDay[key] = d
			continue
		}
		cur.Income = cur.Income.Add(d.Income)
		cur.Expense = cur.Expense.Add(d.Expense)
		byDay[key] = cur
	}

	out := make([]model.DailyFlow, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
