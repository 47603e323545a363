package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func sampleTxn() model.Transaction {
	return model.Transaction{
		ID:          "txn-001",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "dinner at luigi's",
		Amount:      decimal.RequireFromString("90.00"),
		Direction:   model.DirectionDebit,
		Category:    "dining",
		Payer:       "alice",
		Split: map[string]decimal.Decimal{
			"alice": decimal.RequireFromString("30.00"),
			"bob":   decimal.RequireFromString("30.00"),
			"carol": decimal.RequireFromString("30.00"),
		},
		Settled: false,
		Source:  "manual",
	}
}

func TestMarshalUnmarshalTransaction(t *testing.T) {
	original := sampleTxn()
	row := MarshalTransaction(original)
	require.Len(t, row, 10)

	got, err := UnmarshalTransaction(row)
	require.NoError(t, err)

	assert.Equal(t, original.ID, got.ID)
	assert.True(t, original.Date.Equal(got.Date))
	assert.Equal(t, original.Description, got.Description)
	assert.True(t, original.Amount.Equal(got.Amount))
	assert.Equal(t, original.Direction, got.Direction)
	assert.Equal(t, original.Category, got.Category)
	assert.Equal(t, original.Payer, got.Payer)
	require.Len(t, got.Split, 3)
	assert.True(t, got.Split["bob"].Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, original.Settled, got.Settled)
	assert.Equal(t, original.Source, got.Source)
}

func TestSplitEncoding_Stable(t *testing.T) {
	row := MarshalTransaction(sampleTxn())
	assert.Equal(t, "alice=30.00;bob=30.00;carol=30.00", row[colSplit])
}

func TestUnmarshalTransaction_Errors(t *testing.T) {
	base := MarshalTransaction(sampleTxn())

	tests := []struct {
		name   string
		mutate func(row []string)
	}{
		{"bad date", func(row []string) { row[colDate] = "10/03/2025" }},
		{"bad amount", func(row []string) { row[colAmount] = "ninety" }},
		{"negative amount", func(row []string) { row[colAmount] = "-90.00" }},
		{"zero amount", func(row []string) { row[colAmount] = "0" }},
		{"bad direction", func(row []string) { row[colDirection] = "sideways" }},
		{"bad split share", func(row []string) { row[colSplit] = "alice=lots" }},
		{"split missing name", func(row []string) { row[colSplit] = "=30.00" }},
		{"bad settled", func(row []string) { row[colSettled] = "maybe" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := make([]string, len(base))
			copy(row, base)
			tc.mutate(row)
			_, err := UnmarshalTransaction(row)
			assert.Error(t, err)
		})
	}
}

func TestReadTransactions_SkipsMalformedRows(t *testing.T) {
	csv := Header + "\n" +
		"t1,2025-03-10,groceries,45.50,debit,food,alice,,false,manual\n" +
		"t2,not-a-date,broken,45.50,debit,food,alice,,false,manual\n" +
		"t3,2025-03-11,salary,2000.00,credit,work,,,false,import\n"

	txns, skipped, err := ReadTransactions(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	require.Len(t, txns, 2)
	assert.Equal(t, "t1", txns[0].ID)
	assert.Equal(t, "t3", txns[1].ID)
	assert.Equal(t, model.DirectionCredit, txns[1].Direction)
}

func TestReadWriteRoundTrip(t *testing.T) {
	txns := []model.Transaction{sampleTxn()}

	var b strings.Builder
	require.NoError(t, WriteTransactions(&b, txns))
	assert.True(t, strings.HasPrefix(b.String(), Header))

	got, skipped, err := ReadTransactions(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, got, 1)
	assert.Equal(t, "txn-001", got[0].ID)
}

func TestReadTransactions_EmptyInput(t *testing.T) {
	txns, skipped, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, txns)
}
