package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Header is the CSV header for a ledger.csv file.
const Header = "id,date,kind,category,amount,note"

// UsersHeader is the CSV header for users.csv.
const UsersHeader = "username,password_hash"

const (
	numFields   = 6
	colID       = 0
	colDate     = 1
	colKind     = 2
	colCategory = 3
	colAmount   = 4
	colNote     = 5
)

// ReadRecords reads all records from a ledger.csv reader. Owner is not
// stored per row; callers stamp it.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	recs := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recs = append(recs, UnmarshalRecord(row))
	}
	return recs, nil
}

// WriteRecords writes records to a ledger.csv writer (including header).
func WriteRecords(w io.Writer, recs []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range recs {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendRecords writes records without a header.
func AppendRecords(w io.Writer, recs []model.Record) error {
	cw := csv.NewWriter(w)
	for i, rec := range recs {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a record to a CSV row.
func MarshalRecord(rec model.Record) []string {
	row := make([]string, numFields)
	row[colID] = rec.ID
	row[colDate] = rec.Date
	row[colKind] = rec.Kind
	row[colCategory] = rec.Category
	row[colAmount] = rec.Amount
	row[colNote] = rec.Note
	return row
}

// UnmarshalRecord converts a CSV row to a record. Fields stay raw so the
// ledger can report validation failures against the stored text.
func UnmarshalRecord(row []string) model.Record {
	return model.Record{
		ID:       row[colID],
		Date:     row[colDate],
		Kind:     row[colKind],
		Category: row[colCategory],
		Amount:   row[colAmount],
		Note:     row[colNote],
	}
}
