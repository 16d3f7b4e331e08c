package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
	chaseColType    = 4
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV. Debits become expenses and credits become
// income, both with a positive amount.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	recs := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseChaseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseChaseRow(row []string) (model.Record, error) {
	date, err := time.Parse(chaseDateFormat, row[chaseColDate])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing date %q: %w", row[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(row[chaseColAmount])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing amount %q: %w", row[chaseColAmount], err)
	}

	kind := model.KindIncome
	if amount.IsNegative() {
		kind = model.KindExpense
	}

	return model.Record{
		Date:     date.Format(model.DateFormat),
		Kind:     string(kind),
		Category: row[chaseColType],
		Amount:   amount.Abs().StringFixed(2),
		Note:     row[chaseColDesc],
	}, nil
}
