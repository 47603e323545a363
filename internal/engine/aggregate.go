package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Summary is the income/expense/net roll-up over a snapshot.
type Summary struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
	Transactions int
}

// CategoryTotal is one slice of a per-category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// MonthTotal is one month of aggregated flows.
type MonthTotal struct {
	Month   string // "2006-01"
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Comparison contrasts the latest observed month with the one before it.
type Comparison struct {
	Current      MonthTotal
	Previous     MonthTotal
	IncomeDelta  decimal.Decimal
	ExpenseDelta decimal.Decimal
}

// partitionValid separates usable records from malformed ones, returning
// the skip count so callers can report partial failures.
func partitionValid(txns []model.Transaction) ([]model.Transaction, int) {
	var valid []model.Transaction
	skipped := 0
	for _, t := range txns {
		if !t.Valid() {
			skipped++
			continue
		}
		valid = append(valid, t)
	}
	return valid, skipped
}

func summarize(txns []model.Transaction) *Summary {
	s := &Summary{Income: decimal.Zero, Expense: decimal.Zero, Transactions: len(txns)}
	for _, t := range txns {
		if t.Direction == model.DirectionCredit {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// breakdown totals amounts per category for one direction, largest first.
func breakdown(txns []model.Transaction, direction model.Direction) []CategoryTotal {
	totals := make(map[string]*CategoryTotal)
	for _, t := range txns {
		if t.Direction != direction {
			continue
		}
		category := t.Category
		if category == "" {
			category = "uncategorized"
		}
		ct, ok := totals[category]
		if !ok {
			ct = &CategoryTotal{Category: category, Total: decimal.Zero}
			totals[category] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func monthly(txns []model.Transaction) []MonthTotal {
	byMonth := make(map[string]*MonthTotal)
	for _, t := range txns {
		key := t.Date.Format("2006-01")
		mt, ok := byMonth[key]
		if !ok {
			mt = &MonthTotal{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[key] = mt
		}
		if t.Direction == model.DirectionCredit {
			mt.Income = mt.Income.Add(t.Amount)
		} else {
			mt.Expense = mt.Expense.Add(t.Amount)
		}
	}

	out := make([]MonthTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// compare contrasts the two most recent observed months. Returns nil when
// fewer than two months of history exist.
func compare(txns []model.Transaction) *Comparison {
	months := monthly(txns)
	if len(months) < 2 {
		return nil
	}
	current := months[len(months)-1]
	previous := months[len(months)-2]
	return &Comparison{
		Current:      current,
		Previous:     previous,
		IncomeDelta:  current.Income.Sub(previous.Income),
		ExpenseDelta: current.Expense.Sub(previous.Expense),
	}
}

// recent returns the n most recent transactions, newest first.
func recent(txns []model.Transaction, n int) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
