package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,description,amount,direction,category,payer,split,settled,source"

const (
	numFields    = 10
	dateFormat   = "2006-01-02"
	colID        = 0
	colDate      = 1
	colDesc      = 2
	colAmount    = 3
	colDirection = 4
	colCategory  = 5
	colPayer     = 6
	colSplit     = 7
	colSettled   = 8
	colSource    = 9
)

// ReadTransactions reads all transactions from a transactions.csv reader.
// Rows that fail to parse are skipped and counted rather than aborting the
// batch.
func ReadTransactions(r io.Reader) ([]model.Transaction, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	skipped := 0
	var txns []model.Transaction
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped++
			continue
		}
		if line == 1 {
			// Header row.
			continue
		}
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, skipped, nil
}

// WriteTransactions writes transactions to a writer, including the header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colDate] = t.Date.Format(dateFormat)
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colDirection] = string(t.Direction)
	row[colCategory] = t.Category
	row[colPayer] = t.Payer
	row[colSplit] = marshalSplit(t.Split)
	row[colSettled] = strconv.FormatBool(t.Settled)
	row[colSource] = t.Source
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("amount %s must be positive", amount)
	}

	direction := model.Direction(record[colDirection])
	if direction != model.DirectionCredit && direction != model.DirectionDebit {
		return model.Transaction{}, fmt.Errorf("unknown direction %q", record[colDirection])
	}

	split, err := parseSplit(record[colSplit])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing split %q: %w", record[colSplit], err)
	}

	settled := false
	if record[colSettled] != "" {
		settled, err = strconv.ParseBool(record[colSettled])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing settled %q: %w", record[colSettled], err)
		}
	}

	return model.Transaction{
		ID:          record[colID],
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Direction:   direction,
		Category:    record[colCategory],
		Payer:       record[colPayer],
		Split:       split,
		Settled:     settled,
		Source:      record[colSource],
	}, nil
}

// marshalSplit encodes a split map as "alice=150.00;bob=75.00" with
// participants in sorted order so output is stable.
func marshalSplit(split map[string]decimal.Decimal) string {
	if len(split) == 0 {
		return ""
	}
	names := make([]string, 0, len(split))
	for name := range split {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+split[name].StringFixed(2))
	}
	return strings.Join(parts, ";")
}

func parseSplit(s string) (map[string]decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	split := make(map[string]decimal.Decimal)
	for _, part := range strings.Split(s, ";") {
		name, share, ok := strings.Cut(part, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed share %q", part)
		}
		amount, err := decimal.NewFromString(share)
		if err != nil {
			return nil, fmt.Errorf("share for %s: %w", name, err)
		}
		split[name] = amount
	}
	return split, nil
}
