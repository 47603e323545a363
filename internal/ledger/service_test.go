package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func TestService_LoadMissingFile(t *testing.T) {
	svc := NewService(t.TempDir())
	snapshot, err := svc.Load()
	require.NoError(t, err)
	assert.Empty(t, snapshot.Transactions)
	assert.Zero(t, snapshot.Skipped)
}

func TestService_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	txns := []model.Transaction{sampleTxn()}
	require.NoError(t, svc.Save(txns))

	info, err := os.Stat(filepath.Join(dir, "ledger", "transactions.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	snapshot, err := svc.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.Transactions, 1)
	assert.Equal(t, "txn-001", snapshot.Transactions[0].ID)
}

func TestSnapshot_Unsettled(t *testing.T) {
	settled := sampleTxn()
	settled.ID = "old"
	settled.Settled = true

	snapshot := &Snapshot{Transactions: []model.Transaction{sampleTxn(), settled}}
	got := snapshot.Unsettled()
	require.Len(t, got, 1)
	assert.Equal(t, "txn-001", got[0].ID)
}

func TestSnapshot_Participants(t *testing.T) {
	solo := model.Transaction{
		ID:        "solo",
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(10),
		Direction: model.DirectionDebit,
		Payer:     "dave",
	}

	snapshot := &Snapshot{Transactions: []model.Transaction{sampleTxn(), solo}}
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, snapshot.Participants())
}
