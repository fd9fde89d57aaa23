// Package auditlog records committed imports so a user can see what was
// loaded into the data directory and when.
package auditlog

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

// Entry is one committed import in the audit log.
type Entry struct {
	Timestamp time.Time
	Kind      string // "banks" or "positions"
	Source    string // imported file name
	Strategy  string // merge strategy applied
	Accepted  int    // rows persisted
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,kind,source,strategy,accepted"

const (
	numFields   = 5
	logDir      = "logs"
	logFile     = "logs/import-log.csv"
	colTime     = 0
	colKind     = 1
	colSource   = 2
	colStrategy = 3
	colAccepted = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colKind] = e.Kind
	row[colSource] = e.Source
	row[colStrategy] = e.Strategy
	row[colAccepted] = strconv.Itoa(e.Accepted)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	accepted, err := strconv.Atoi(record[colAccepted])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing accepted %q: %w", record[colAccepted], err)
	}

	return Entry{
		Timestamp: ts,
		Kind:      record[colKind],
		Source:    record[colSource],
		Strategy:  record[colStrategy],
		Accepted:  accepted,
	}, nil
}

// Append writes an entry to <dataDir>/logs/import-log.csv, creating the file
// and header if needed.
func Append(dataDir string, e Entry) error {
	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/import-log.csv. A missing
// file reads as empty.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
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
