package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVRenderer writes reports as CSV: the column header, then one record per row.
// Header metadata is not part of the CSV body.
type CSVRenderer struct{}

func (CSVRenderer) MIMEType() string  { return "text/csv" }
func (CSVRenderer) Extension() string { return "csv" }

// Render writes t to w.
func (CSVRenderer) Render(w io.Writer, _ Header, t Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
