package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Reason names the rule a rejected record broke.
type Reason string

const (
	ReasonInvalidAmount Reason = "invalid amount"
	ReasonInvalidDate   Reason = "invalid date"
	ReasonUnknownKind   Reason = "unknown kind"
	ReasonMissingOwner  Reason = "missing owner"
)

// Sentinels matched by errors.Is against a ValidationError.
var (
	ErrInvalidAmount = errors.New(string(ReasonInvalidAmount))
	ErrInvalidDate   = errors.New(string(ReasonInvalidDate))
	ErrUnknownKind   = errors.New(string(ReasonUnknownKind))
	ErrMissingOwner  = errors.New(string(ReasonMissingOwner))
)

// ValidationError describes why a record could not become a Transaction.
type ValidationError struct {
	Reason Reason
	Field  string
	Value  string
}

func (e ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s is empty", e.Reason, e.Field)
	}
	return fmt.Sprintf("%s: %s %q", e.Reason, e.Field, e.Value)
}

// Unwrap returns the sentinel for e.Reason.
func (e ValidationError) Unwrap() error {
	switch e.Reason {
	case ReasonInvalidAmount:
		return ErrInvalidAmount
	case ReasonInvalidDate:
		return ErrInvalidDate
	case ReasonUnknownKind:
		return ErrUnknownKind
	case ReasonMissingOwner:
		return ErrMissingOwner
	}
	return nil
}

// legacySaving is the label older ledgers used for the Saving kind.
const legacySaving = "deposit/savings"

var dateLayouts = []string{
	model.DateFormat,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize validates a raw record and converts it to a Transaction.
// Amounts are rounded to 2 fractional digits; dates lose any time part.
func Normalize(rec model.Record) (model.Transaction, error) {
	amount, err := ParseAmount(rec.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	date, err := ParseDate(rec.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return model.Transaction{}, err
	}

	if strings.TrimSpace(rec.Owner) == "" {
		return model.Transaction{}, ValidationError{Reason: ReasonMissingOwner, Field: "owner"}
	}

	return model.Transaction{
		ID:       rec.ID,
		Owner:    rec.Owner,
		Date:     date,
		Kind:     kind,
		Category: rec.Category,
		Amount:   amount,
		Note:     rec.Note,
	}, nil
}

// NormalizeAll normalizes records in order, stopping at the first invalid one.
func NormalizeAll(recs []model.Record) ([]model.Transaction, error) {
	txns := make([]model.Transaction, 0, len(recs))
	for i, rec := range recs {
		txn, err := Normalize(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d (id %s): %w", i+1, rec.ID, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// ParseAmount parses a non-negative decimal amount rounded to 2 places.
// Exponent forms such as "1e3" are rejected: rounding them expands every
// digit of the exponent.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, ValidationError{Reason: ReasonInvalidAmount, Field: "amount", Value: s}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ValidationError{Reason: ReasonInvalidAmount, Field: "amount", Value: s}
	}
	return d.Round(2), nil
}

// ParseDate parses a calendar date, dropping any time of day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ValidationError{Reason: ReasonInvalidDate, Field: "date", Value: s}
}

// ParseKind maps a user-facing label onto a Kind. Matching ignores case and
// surrounding whitespace; "Deposit/Savings" is accepted as Saving.
func ParseKind(s string) (model.Kind, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	if label == legacySaving {
		return model.KindSaving, nil
	}
	for _, k := range model.Kinds() {
		if strings.ToLower(string(k)) == label {
			return k, nil
		}
	}
	return "", ValidationError{Reason: ReasonUnknownKind, Field: "kind", Value: s}
}
