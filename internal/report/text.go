package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// TextRenderer writes reports as a plain-text table.
type TextRenderer struct{}

func (TextRenderer) MIMEType() string  { return "text/plain; charset=utf-8" }
func (TextRenderer) Extension() string { return "txt" }

// Render writes the header block followed by one table line per row.
func (TextRenderer) Render(w io.Writer, h Header, t Table) error {
	if _, err := fmt.Fprintf(w, "%s\nUser: %s\nDate Generated: %s\n\n",
		h.title(), h.Owner, h.GeneratedAt.Format(model.DateFormat)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, row := range t.Rows {
		tw.Append(singleLine(row))
	}
	tw.Render()
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLine keeps each transaction on one table line; tablewriter would
// otherwise split a multi-line note across several.
func singleLine(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = lineBreaks.Replace(cell)
	}
	return out
}
