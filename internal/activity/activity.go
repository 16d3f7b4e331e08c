// Package activity keeps an append-only CSV trail of ledger changes and
// exports, one row per action.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp     time.Time
	User          string
	Action        string
	Details       string
	TransactionID string
}

// Actions recorded by the CLI.
const (
	ActionRegister = "register"
	ActionAdd      = "add"
	ActionImport   = "import"
	ActionExport   = "export"
)

// Header is the CSV header for activity.csv.
const Header = "timestamp,user,action,details,transaction_id"

const (
	numFields        = 5
	logDir           = "logs"
	logFile          = "activity.csv"
	colTimestamp     = 0
	colUser          = 1
	colAction        = 2
	colDetails       = 3
	colTransactionID = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colUser] = e.User
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colTransactionID] = e.TransactionID
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

	return Entry{
		Timestamp:     ts,
		User:          record[colUser],
		Action:        record[colAction],
		Details:       record[colDetails],
		TransactionID: record[colTransactionID],
	}, nil
}

// Path returns the activity log location under a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, logDir, logFile)
}

// Append writes entries to <projectDir>/logs/activity.csv, creating the
// file and header if needed.
func Append(projectDir string, entries ...Entry) error {
	if err := os.MkdirAll(filepath.Join(projectDir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(projectDir)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
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
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <projectDir>/logs/activity.csv, or nil if
// the file does not exist.
func Read(projectDir string) ([]Entry, error) {
	f, err := os.Open(Path(projectDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// ForUser returns the entries recorded for user, oldest first.
func ForUser(entries []Entry, user string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.User == user {
			out = append(out, e)
		}
	}
	return out
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
