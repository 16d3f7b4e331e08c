package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical string form of a transaction date.
const DateFormat = "2006-01-02"

// Transaction is one normalized ledger entry.
type Transaction struct {
	ID       string    // assigned by the store
	Owner    string
	Date     time.Time // midnight UTC, no time component
	Kind     Kind
	Category string          // free text, may be empty
	Amount   decimal.Decimal // never negative, 2 fractional digits
	Note     string
}

// Signed returns the amount with the sign of the transaction's kind applied.
func (t Transaction) Signed() decimal.Decimal {
	return t.Amount.Mul(decimal.NewFromInt(int64(t.Kind.Sign())))
}

// Record returns the canonical string form of t, as persisted by stores.
func (t Transaction) Record() Record {
	return Record{
		ID:       t.ID,
		Owner:    t.Owner,
		Date:     t.Date.Format(DateFormat),
		Kind:     string(t.Kind),
		Category: t.Category,
		Amount:   t.Amount.StringFixed(2),
		Note:     t.Note,
	}
}

// Record is a raw, unvalidated transaction as it crosses the store boundary
// or arrives from user input.
type Record struct {
	ID       string
	Owner    string
	Date     string
	Kind     string
	Category string
	Amount   string
	Note     string
}
