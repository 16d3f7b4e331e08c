package report

import (
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Columns is the fixed column set of every report, in order.
var Columns = []string{"Date", "Kind", "Category", "Amount", "Note"}

const (
	colDate = iota
	colKind
	colCategory
	colAmount
	colNote
	numColumns
)

// Table is the format-independent content of a report: one row per
// transaction, in the order given.
type Table struct {
	Columns []string
	Rows    [][]string
}

// BuildTable serializes transactions into report rows without reordering.
func BuildTable(txns []model.Transaction) Table {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, MarshalRow(t))
	}
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return Table{Columns: cols, Rows: rows}
}

// MarshalRow converts a Transaction to its report row.
func MarshalRow(t model.Transaction) []string {
	row := make([]string, numColumns)
	row[colDate] = t.Date.Format(model.DateFormat)
	row[colKind] = string(t.Kind)
	row[colCategory] = t.Category
	row[colAmount] = t.Amount.StringFixed(2)
	row[colNote] = t.Note
	return row
}

// Paginate splits rows into pages holding at most first rows on the first page
// and rest rows on each later page. There is always at least one page.
func Paginate(rows [][]string, first, rest int) [][][]string {
	if first < 1 {
		first = 1
	}
	if rest < 1 {
		rest = 1
	}

	pages := [][][]string{}
	limit := first
	for len(rows) > limit {
		pages = append(pages, rows[:limit])
		rows = rows[limit:]
		limit = rest
	}
	return append(pages, rows)
}
