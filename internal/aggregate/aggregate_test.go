package aggregate

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func txn(id string, d time.Time, kind model.Kind, category, amount string) model.Transaction {
	return model.Transaction{
		ID:       id,
		Owner:    "alice",
		Date:     d,
		Kind:     kind,
		Category: category,
		Amount:   dec(amount),
	}
}

func scenario() []model.Transaction {
	return []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindIncome, "Salary", "1000.00"),
		txn("2", date(2024, 1, 1), model.KindExpense, "Rent", "500.00"),
		txn("3", date(2024, 1, 2), model.KindExpense, "Food", "50.00"),
	}
}

func TestScenario(t *testing.T) {
	ts := scenario()

	totals := ComputeTotals(ts)
	assert.Equal(t, "1000.00", totals.Income.StringFixed(2))
	assert.Equal(t, "550.00", totals.Expense.StringFixed(2))
	assert.Equal(t, "450.00", totals.Balance.StringFixed(2))

	assert.Len(t, Trend(ts), 3)

	breakdown := CategoryBreakdown(ts)
	require.Len(t, breakdown, 2)
	assert.True(t, breakdown["Rent"].Equal(dec("500")))
	assert.True(t, breakdown["Food"].Equal(dec("50")))

	recent := Recent(ts, 5)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].Date.Equal(date(2024, 1, 2)))
	assert.Equal(t, "3", recent[0].ID)
}

func TestEmptyInput(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Balance.IsZero())

	assert.Empty(t, Trend(nil))
	assert.Empty(t, CategoryBreakdown(nil))
	assert.NotNil(t, CategoryBreakdown(nil), "empty mapping, not nil")
	assert.Empty(t, SortedBreakdown(nil))
	assert.Empty(t, Recent(nil, 5))
	assert.Empty(t, Recent([]model.Transaction{}, 0))
}

func TestTotals_SavingCountsAsIncome(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindSaving, "", "200"),
		txn("2", date(2024, 1, 1), model.KindIncome, "", "100"),
		txn("3", date(2024, 1, 1), model.KindExpense, "", "400"),
	}
	totals := ComputeTotals(ts)
	assert.Equal(t, "300.00", totals.Income.StringFixed(2))
	assert.Equal(t, "400.00", totals.Expense.StringFixed(2))
	assert.Equal(t, "-100.00", totals.Balance.StringFixed(2))
}

func TestTotals_BalanceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := model.Kinds()
	for round := 0; round < 50; round++ {
		n := rng.Intn(30)
		ts := make([]model.Transaction, n)
		signedSum := decimal.Zero
		for i := range ts {
			cents := rng.Int63n(1_000_000)
			amt := decimal.New(cents, -2)
			ts[i] = model.Transaction{
				ID:     strconv.Itoa(i),
				Date:   date(2024, 1, 1+rng.Intn(28)),
				Kind:   kinds[rng.Intn(len(kinds))],
				Amount: amt,
			}
			signedSum = signedSum.Add(ts[i].Signed())
		}

		totals := ComputeTotals(ts)
		assert.True(t, totals.Balance.Equal(totals.Income.Sub(totals.Expense)), "round %d", round)
		assert.True(t, totals.Balance.Equal(signedSum), "round %d", round)
		assert.False(t, totals.Income.IsNegative())
		assert.False(t, totals.Expense.IsNegative())
	}
}

func TestTotals_NoRoundingDrift(t *testing.T) {
	var ts []model.Transaction
	for i := 0; i < 10; i++ {
		ts = append(ts, txn(strconv.Itoa(i), date(2024, 1, 1), model.KindIncome, "", "0.10"))
	}
	assert.Equal(t, "1.00", ComputeTotals(ts).Income.StringFixed(2))
	assert.True(t, ComputeTotals(ts).Income.Equal(dec("1")))
}

func TestTrend_MergesSameDateAndKind(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindExpense, "Food", "10.25"),
		txn("2", date(2024, 1, 1), model.KindExpense, "Fuel", "4.75"),
	}
	points := Trend(ts)
	require.Len(t, points, 1)
	assert.Equal(t, model.KindExpense, points[0].Kind)
	assert.Equal(t, "15.00", points[0].Amount.StringFixed(2))
}

func TestTrend_DistinctGroupsNeverMerge(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindExpense, "", "1"),
		txn("2", date(2024, 1, 1), model.KindIncome, "", "2"),
		txn("3", date(2024, 1, 2), model.KindExpense, "", "3"),
		txn("4", date(2024, 1, 1), model.KindSaving, "", "4"),
	}
	assert.Len(t, Trend(ts), 4)
}

func TestTrend_Ordering(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 3, 1), model.KindSaving, "", "1"),
		txn("2", date(2024, 1, 1), model.KindSaving, "", "2"),
		txn("3", date(2024, 1, 1), model.KindIncome, "", "3"),
		txn("4", date(2024, 1, 1), model.KindExpense, "", "4"),
		txn("5", date(2024, 2, 1), model.KindExpense, "", "5"),
	}
	points := Trend(ts)
	require.Len(t, points, 5)

	want := []struct {
		d    time.Time
		kind model.Kind
	}{
		{date(2024, 1, 1), model.KindExpense},
		{date(2024, 1, 1), model.KindIncome},
		{date(2024, 1, 1), model.KindSaving},
		{date(2024, 2, 1), model.KindExpense},
		{date(2024, 3, 1), model.KindSaving},
	}
	for i, w := range want {
		assert.True(t, w.d.Equal(points[i].Date), "point %d date", i)
		assert.Equal(t, w.kind, points[i].Kind, "point %d kind", i)
	}
}

func TestTrend_DoesNotMutateInput(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 2), model.KindExpense, "", "1"),
		txn("2", date(2024, 1, 1), model.KindExpense, "", "2"),
		txn("3", date(2024, 1, 1), model.KindExpense, "", "3"),
	}
	_ = Trend(ts)
	assert.Equal(t, "1", ts[0].ID)
	assert.Equal(t, "1.00", ts[0].Amount.StringFixed(2))
	assert.Equal(t, "2.00", ts[1].Amount.StringFixed(2))
}

func TestCategoryBreakdown_ExpenseOnly(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindIncome, "Food", "100"),
		txn("2", date(2024, 1, 1), model.KindSaving, "Food", "100"),
		txn("3", date(2024, 1, 1), model.KindExpense, "Food", "7"),
		txn("4", date(2024, 1, 2), model.KindExpense, "Food", "3"),
	}
	got := CategoryBreakdown(ts)
	require.Len(t, got, 1)
	assert.Equal(t, "10.00", got["Food"].StringFixed(2))
}

func TestCategoryBreakdown_RawKeys(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindExpense, "Food", "1"),
		txn("2", date(2024, 1, 1), model.KindExpense, "food", "2"),
		txn("3", date(2024, 1, 1), model.KindExpense, "Food ", "3"),
		txn("4", date(2024, 1, 1), model.KindExpense, "", "4"),
	}
	got := CategoryBreakdown(ts)
	assert.Len(t, got, 4)
	assert.Equal(t, "4.00", got[""].StringFixed(2))
	assert.Equal(t, "3.00", got["Food "].StringFixed(2))
}

func TestSortedBreakdown(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindExpense, "b", "5"),
		txn("2", date(2024, 1, 1), model.KindExpense, "a", "5"),
		txn("3", date(2024, 1, 1), model.KindExpense, "c", "9"),
	}
	got := SortedBreakdown(ts)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].Category)
	assert.Equal(t, "a", got[1].Category)
	assert.Equal(t, "b", got[2].Category)
}

func TestRecent_TieBreakNewestInsertionFirst(t *testing.T) {
	ts := []model.Transaction{
		txn("1", date(2024, 1, 1), model.KindExpense, "", "1"),
		txn("2", date(2024, 1, 3), model.KindExpense, "", "2"),
		txn("3", date(2024, 1, 1), model.KindExpense, "", "3"),
		txn("4", date(2024, 1, 3), model.KindExpense, "", "4"),
	}
	got := Recent(ts, 10)
	ids := make([]string, len(got))
	for i, g := range got {
		ids[i] = g.ID
	}
	assert.Equal(t, []string{"4", "2", "3", "1"}, ids)
	assert.Equal(t, "1", ts[0].ID, "input not mutated")
}

func TestRecent_Truncates(t *testing.T) {
	var ts []model.Transaction
	for i := 1; i <= 8; i++ {
		ts = append(ts, txn(strconv.Itoa(i), date(2024, 1, i), model.KindIncome, "", "1"))
	}
	got := Recent(ts, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "8", got[0].ID)
	assert.Equal(t, "6", got[2].ID)

	assert.Len(t, Recent(ts, 0), DefaultRecent)
	assert.Len(t, Recent(ts, -1), DefaultRecent)
}

func TestSummarize(t *testing.T) {
	d := Summarize(scenario(), 2)
	assert.Equal(t, "450.00", d.Totals.Balance.StringFixed(2))
	assert.Len(t, d.Trend, 3)
	require.Len(t, d.Breakdown, 2)
	assert.Equal(t, "Rent", d.Breakdown[0].Category)
	assert.Len(t, d.Recent, 2)
}
