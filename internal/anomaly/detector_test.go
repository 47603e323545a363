package anomaly

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func txns(amounts ...string) []model.Transaction {
	out := make([]model.Transaction, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, model.Transaction{
			ID:          fmt.Sprintf("t%d", i+1),
			Date:        time.Date(2025, 4, i+1, 0, 0, 0, 0, time.UTC),
			Description: fmt.Sprintf("purchase %d", i+1),
			Amount:      decimal.RequireFromString(a),
			Direction:   model.DirectionDebit,
		})
	}
	return out
}

func TestDetect_FlagsSpike(t *testing.T) {
	// Baseline over [100,100,100,100,1000] is 280; only the 1000 entry
	// exceeds 2x baseline, with a deviation ratio around 3.57.
	got := Detect(txns("100", "100", "100", "100", "1000"), DefaultOptions())

	require.Len(t, got, 1)
	a := got[0]
	assert.Equal(t, "t5", a.TransactionID)
	assert.True(t, a.ObservedAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.BaselineAmount.Equal(decimal.NewFromInt(280)), "baseline: got %s", a.BaselineAmount)
	assert.InDelta(t, 3.57, a.DeviationRatio.InexactFloat64(), 0.01)
	assert.Equal(t, model.SeverityHigh, a.Severity)
}

func TestDetect_NoFlagsWithinThreshold(t *testing.T) {
	got := Detect(txns("100", "100", "150"), DefaultOptions())
	assert.Empty(t, got)
}

func TestDetect_SeverityTiers(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    model.Severity
	}{
		// baseline 150, flagged at 300; 500/150 ~ 3.33 => high
		{"high above 3x", []string{"100", "100", "100", "100", "100", "100", "100", "500"}, model.SeverityHigh},
		// baseline ~128.57, flagged at ~257.1; 300/128.57 ~ 2.33 => medium
		{"medium between 2x and 3x", []string{"100", "100", "100", "100", "100", "100", "300"}, model.SeverityMedium},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(txns(tc.amounts...), DefaultOptions())
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].Severity)
		})
	}
}

func TestDetect_CustomMultiplier(t *testing.T) {
	opts := DefaultOptions()
	opts.ThresholdMultiplier = decimal.RequireFromString("1.5")

	// Baseline 150: with multiplier 1.5 the cutoff is 225, so 300 flags
	// even though it stays under the default 2x cutoff.
	got := Detect(txns("100", "50", "300", "150"), opts)
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].TransactionID)
}

func TestDetect_DegenerateSets(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Detect(nil, DefaultOptions()))
	})

	t.Run("single transaction", func(t *testing.T) {
		assert.Empty(t, Detect(txns("5000"), DefaultOptions()))
	})
}

func TestDetect_SkipsMalformed(t *testing.T) {
	set := txns("100", "100", "1000")
	set = append(set, model.Transaction{ID: "bad", Description: "no date or amount"})

	got := Detect(set, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].TransactionID)
}
