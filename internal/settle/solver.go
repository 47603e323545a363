// Package settle computes net balances over unsettled shared transactions
// and reduces the resulting web of debts to a short list of point-to-point
// payments.
package settle

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// halfCent is the residual threshold: once a participant's remaining
// balance magnitude drops below half a minor unit it is considered cleared.
var halfCent = decimal.New(5, -3) // 0.005

// Plan is the output of one solver run.
type Plan struct {
	ID          string
	GeneratedAt time.Time
	Settlements []model.Settlement
	Total       decimal.Decimal // sum of settlement amounts
}

// Balances computes each participant's net position over the unsettled
// transactions: amounts they paid minus the shares they owe. Settled
// transactions and transactions without splits do not move balances.
// For a closed ledger the balances sum to zero.
func Balances(txns []model.Transaction, participants []string) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		balances[p] = decimal.Zero
	}

	for _, t := range txns {
		if t.Settled || !t.IsShared() || !t.Valid() {
			continue
		}
		balances[t.Payer] = balances[t.Payer].Add(t.Amount)
		for name, share := range t.Split {
			balances[name] = balances[name].Sub(share)
		}
	}
	return balances
}

// Solve produces a settlement plan for the given snapshot. Degenerate
// input (no participants, all balances zero) yields an empty plan.
func Solve(txns []model.Transaction, participants []string) Plan {
	balances := Balances(txns, participants)
	settlements := match(balances)

	total := decimal.Zero
	for _, s := range settlements {
		total = total.Add(s.Amount)
	}

	return Plan{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Settlements: settlements,
		Total:       total,
	}
}

type position struct {
	name   string
	amount decimal.Decimal
}

// match greedily pairs the largest debtor with the largest creditor until
// one side is exhausted. Each emitted amount is rounded to the minor unit;
// the rounding residual stays in the participant's running balance and is
// carried into their next pairing, so totals balance to within half a cent
// per participant. Sub-cent residue left at the end is dropped.
func match(balances map[string]decimal.Decimal) []model.Settlement {
	var debtors, creditors []position
	for name, b := range balances {
		switch {
		case b.IsNegative():
			debtors = append(debtors, position{name, b})
		case b.IsPositive():
			creditors = append(creditors, position{name, b})
		}
	}

	// Deterministic order: most negative debtor first, largest creditor
	// first, names break ties.
	sort.Slice(debtors, func(i, j int) bool {
		if !debtors[i].amount.Equal(debtors[j].amount) {
			return debtors[i].amount.LessThan(debtors[j].amount)
		}
		return debtors[i].name < debtors[j].name
	})
	sort.Slice(creditors, func(i, j int) bool {
		if !creditors[i].amount.Equal(creditors[j].amount) {
			return creditors[i].amount.GreaterThan(creditors[j].amount)
		}
		return creditors[i].name < creditors[j].name
	})

	var settlements []model.Settlement
	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		owed := debtors[di].amount.Neg()
		due := creditors[ci].amount

		amount := decimal.Min(owed, due).Round(2)
		if amount.IsPositive() {
			settlements = append(settlements, model.Settlement{
				From:   debtors[di].name,
				To:     creditors[ci].name,
				Amount: amount,
			})
			debtors[di].amount = debtors[di].amount.Add(amount)
			creditors[ci].amount = creditors[ci].amount.Sub(amount)
		}

		if debtors[di].amount.Neg().LessThan(halfCent) {
			di++
		}
		if ci < len(creditors) && creditors[ci].amount.LessThan(halfCent) {
			ci++
		}
	}

	return settlements
}
