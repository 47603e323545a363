// Package querylog keeps an append-only audit trail of resolved queries.
package querylog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the query log.
type Entry struct {
	Timestamp  time.Time
	Query      string
	Intent     string
	Confidence float64
	Source     string
	Category   string
}

// Header is the CSV header for query-log.csv.
const Header = "timestamp,query,intent,confidence,source,category"

const (
	numFields     = 6
	logDir        = "logs"
	logFile       = "logs/query-log.csv"
	colTimestamp  = 0
	colQuery      = 1
	colIntent     = 2
	colConfidence = 3
	colSource     = 4
	colCategory   = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colQuery] = e.Query
	row[colIntent] = e.Intent
	row[colConfidence] = strconv.FormatFloat(e.Confidence, 'f', 2, 64)
	row[colSource] = e.Source
	row[colCategory] = e.Category
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	confidence, err := strconv.ParseFloat(record[colConfidence], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing confidence %q: %w", record[colConfidence], err)
	}

	return Entry{
		Timestamp:  ts,
		Query:      record[colQuery],
		Intent:     record[colIntent],
		Confidence: confidence,
		Source:     record[colSource],
		Category:   record[colCategory],
	}, nil
}

// Append writes entries to <root>/logs/query-log.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening query log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/query-log.csv. Returns nil if
// the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening query log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading query log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
