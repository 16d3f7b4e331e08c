// Package aggregate derives dashboard views from a user's transactions.
// Every function is pure and accepts any well-formed collection, including
// an empty one.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// DefaultRecent is the number of rows Recent returns when n <= 0.
const DefaultRecent = 5

// Totals summarizes inflows and outflows.
type Totals struct {
	Income  decimal.Decimal // Income + Saving
	Expense decimal.Decimal
	Balance decimal.Decimal // Income - Expense
}

// TrendPoint is the summed amount for one (date, kind) pair.
type TrendPoint struct {
	Date   time.Time
	Kind   model.Kind
	Amount decimal.Decimal
}

// CategoryAmount is the expense total for one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Dashboard bundles every view the presentation layer draws.
type Dashboard struct {
	Totals    Totals
	Trend     []TrendPoint
	Breakdown []CategoryAmount
	Recent    []model.Transaction
}

// Summarize computes all dashboard views at once.
func Summarize(txns []model.Transaction, recent int) Dashboard {
	return Dashboard{
		Totals:    ComputeTotals(txns),
		Trend:     Trend(txns),
		Breakdown: SortedBreakdown(txns),
		Recent:    Recent(txns, recent),
	}
}

// ComputeTotals sums inflows and outflows using each kind's sign.
func ComputeTotals(txns []model.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txns {
		switch {
		case t.Kind.Sign() > 0:
			income = income.Add(t.Amount)
		case t.Kind.Sign() < 0:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

type trendKey struct {
	day  string
	kind model.Kind
}

// Trend groups transactions by (date, kind) and sums each group. Points are
// ordered by date, then by kind order (Expense, Income, Saving).
func Trend(txns []model.Transaction) []TrendPoint {
	index := make(map[trendKey]int)
	var points []TrendPoint
	for _, t := range txns {
		k := trendKey{day: t.Date.Format(model.DateFormat), kind: t.Kind}
		if i, ok := index[k]; ok {
			points[i].Amount = points[i].Amount.Add(t.Amount)
			continue
		}
		index[k] = len(points)
		points = append(points, TrendPoint{Date: t.Date, Kind: t.Kind, Amount: t.Amount})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].Kind.Order() < points[j].Kind.Order()
	})
	return points
}

// CategoryBreakdown sums expense amounts per raw category string. Categories
// differing only in case or whitespace stay separate.
func CategoryBreakdown(txns []model.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Kind.Sign() >= 0 {
			continue
		}
		if cur, ok := out[t.Category]; ok {
			out[t.Category] = cur.Add(t.Amount)
		} else {
			out[t.Category] = t.Amount
		}
	}
	return out
}

// SortedBreakdown is CategoryBreakdown ordered by amount descending, then by
// category name.
func SortedBreakdown(txns []model.Transaction) []CategoryAmount {
	m := CategoryBreakdown(txns)
	out := make([]CategoryAmount, 0, len(m))
	for c, amt := range m {
		out = append(out, CategoryAmount{Category: c, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Recent returns up to n transactions, newest date first. Transactions on the
// same date keep reverse insertion order (most recently added first).
func Recent(txns []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		n = DefaultRecent
	}

	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		out[len(txns)-1-i] = t
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
