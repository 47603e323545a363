package settle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sharedTxn(payer, amount string, split map[string]string) model.Transaction {
	parsed := make(map[string]decimal.Decimal, len(split))
	for name, share := range split {
		parsed[name] = dec(share)
	}
	return model.Transaction{
		ID:          "t-" + payer,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "shared expense",
		Amount:      dec(amount),
		Direction:   model.DirectionDebit,
		Payer:       payer,
		Split:       parsed,
	}
}

func TestBalances_SumToZero(t *testing.T) {
	txns := []model.Transaction{
		sharedTxn("alice", "300.00", map[string]string{"alice": "100.00", "bob": "100.00", "carol": "100.00"}),
		sharedTxn("bob", "90.00", map[string]string{"alice": "30.00", "bob": "30.00", "carol": "30.00"}),
		sharedTxn("carol", "45.50", map[string]string{"alice": "22.75", "bob": "22.75"}),
	}
	participants := []string{"alice", "bob", "carol"}

	balances := Balances(txns, participants)

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b)
	}
	assert.True(t, total.IsZero(), "balances must sum to zero, got %s", total)
}

func TestBalances_SettledExcluded(t *testing.T) {
	settled := sharedTxn("alice", "300.00", map[string]string{"bob": "300.00"})
	settled.Settled = true

	balances := Balances([]model.Transaction{settled}, []string{"alice", "bob"})
	assert.True(t, balances["alice"].IsZero())
	assert.True(t, balances["bob"].IsZero())
}

func TestSolve_ThreeWayEqualSplit(t *testing.T) {
	// Payer A covers 300 split equally; B and C each owe A 100.
	txns := []model.Transaction{
		sharedTxn("alice", "300.00", map[string]string{"alice": "100.00", "bob": "100.00", "carol": "100.00"}),
	}
	plan := Solve(txns, []string{"alice", "bob", "carol"})

	require.Len(t, plan.Settlements, 2)
	for _, s := range plan.Settlements {
		assert.Equal(t, "alice", s.To)
		assert.True(t, s.Amount.Equal(dec("100.00")), "amount: got %s", s.Amount)
	}
	assert.ElementsMatch(t,
		[]string{"bob", "carol"},
		[]string{plan.Settlements[0].From, plan.Settlements[1].From})
	assert.True(t, plan.Total.Equal(dec("200.00")), "total: got %s", plan.Total)
	assert.NotEmpty(t, plan.ID)
}

func TestSolve_TotalsMatchPositiveBalances(t *testing.T) {
	txns := []model.Transaction{
		sharedTxn("alice", "120.00", map[string]string{"bob": "60.00", "carol": "60.00"}),
		sharedTxn("bob", "80.00", map[string]string{"alice": "40.00", "carol": "40.00"}),
	}
	participants := []string{"alice", "bob", "carol"}

	balances := Balances(txns, participants)
	positive := decimal.Zero
	for _, b := range balances {
		if b.IsPositive() {
			positive = positive.Add(b)
		}
	}

	plan := Solve(txns, participants)
	assert.True(t, plan.Total.Equal(positive),
		"settlement total %s should equal positive balances %s", plan.Total, positive)
}

func TestSolve_CountBound(t *testing.T) {
	txns := []model.Transaction{
		sharedTxn("alice", "100.00", map[string]string{"bob": "50.00", "carol": "30.00", "dave": "20.00"}),
		sharedTxn("bob", "40.00", map[string]string{"carol": "25.00", "dave": "15.00"}),
	}
	participants := []string{"alice", "bob", "carol", "dave"}

	balances := Balances(txns, participants)
	debtors, creditors := 0, 0
	for _, b := range balances {
		switch {
		case b.IsNegative():
			debtors++
		case b.IsPositive():
			creditors++
		}
	}

	plan := Solve(txns, participants)
	assert.LessOrEqual(t, len(plan.Settlements), debtors+creditors-1)
}

func TestSolve_Deterministic(t *testing.T) {
	txns := []model.Transaction{
		sharedTxn("alice", "100.00", map[string]string{"bob": "50.00", "carol": "50.00"}),
		sharedTxn("dave", "100.00", map[string]string{"bob": "50.00", "carol": "50.00"}),
	}
	participants := []string{"alice", "bob", "carol", "dave"}

	first := Solve(txns, participants)
	for range 10 {
		again := Solve(txns, participants)
		require.Len(t, again.Settlements, len(first.Settlements))
		for i := range first.Settlements {
			assert.Equal(t, first.Settlements[i].From, again.Settlements[i].From)
			assert.Equal(t, first.Settlements[i].To, again.Settlements[i].To)
			assert.True(t, first.Settlements[i].Amount.Equal(again.Settlements[i].Amount))
		}
	}
}

func TestSolve_UnevenSplitRoundsToMinorUnit(t *testing.T) {
	// 100 split three ways leaves repeating thirds; emitted amounts must
	// still land on whole cents and the plan must cover the debt to within
	// a cent per participant.
	txns := []model.Transaction{
		sharedTxn("alice", "100.00", map[string]string{
			"alice": "33.333333", "bob": "33.333333", "carol": "33.333334",
		}),
	}
	plan := Solve(txns, []string{"alice", "bob", "carol"})

	require.Len(t, plan.Settlements, 2)
	cents := decimal.New(1, -2)
	for _, s := range plan.Settlements {
		assert.True(t, s.Amount.Mod(cents).IsZero(), "amount %s not on a cent boundary", s.Amount)
	}
	expected := dec("66.67")
	diff := plan.Total.Sub(expected).Abs()
	assert.True(t, diff.LessThanOrEqual(cents), "total %s too far from %s", plan.Total, expected)
}

func TestSolve_Degenerate(t *testing.T) {
	t.Run("no participants", func(t *testing.T) {
		plan := Solve(nil, nil)
		assert.Empty(t, plan.Settlements)
		assert.True(t, plan.Total.IsZero())
	})

	t.Run("all balances zero", func(t *testing.T) {
		txns := []model.Transaction{
			sharedTxn("alice", "50.00", map[string]string{"alice": "50.00"}),
		}
		plan := Solve(txns, []string{"alice", "bob"})
		assert.Empty(t, plan.Settlements)
	})

	t.Run("unshared transactions ignored", func(t *testing.T) {
		txn := model.Transaction{
			ID:        "t1",
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Amount:    dec("80.00"),
			Direction: model.DirectionDebit,
			Payer:     "alice",
		}
		plan := Solve([]model.Transaction{txn}, []string{"alice", "bob"})
		assert.Empty(t, plan.Settlements)
	})
}

func TestSolve_ChainAcrossCreditors(t *testing.T) {
	// bob owes more than either creditor is due alone, so his debt spans
	// both of them.
	txns := []model.Transaction{
		sharedTxn("alice", "60.00", map[string]string{"bob": "60.00"}),
		sharedTxn("carol", "40.00", map[string]string{"bob": "40.00"}),
	}
	plan := Solve(txns, []string{"alice", "bob", "carol"})

	require.Len(t, plan.Settlements, 2)
	assert.Equal(t, "bob", plan.Settlements[0].From)
	assert.Equal(t, "alice", plan.Settlements[0].To)
	assert.True(t, plan.Settlements[0].Amount.Equal(dec("60.00")))
	assert.Equal(t, "bob", plan.Settlements[1].From)
	assert.Equal(t, "carol", plan.Settlements[1].To)
	assert.True(t, plan.Settlements[1].Amount.Equal(dec("40.00")))
}
