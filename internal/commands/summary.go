package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/model"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var (
		creds  credentials
		recent int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, trend, expense breakdown and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				owner, err := a.authenticate(cmd.Context(), &creds)
				if err != nil {
					return err
				}
				txns, err := a.ledger.Load(cmd.Context(), owner)
				if err != nil {
					return err
				}

				n := a.cfg.Report.Recent
				if cmd.Flags().Changed("recent") {
					n = recent
				}
				writeDashboard(cmd.OutOrStdout(), aggregate.Summarize(txns, n))
				return nil
			})
		},
	}

	creds.bind(cmd)
	cmd.Flags().IntVar(&recent, "recent", aggregate.DefaultRecent, "number of recent transactions to show")

	return cmd
}

func writeDashboard(w io.Writer, d aggregate.Dashboard) {
	fmt.Fprintln(w, "Totals")
	writeTable(w, []string{"Income", "Expense", "Balance"}, [][]string{{
		d.Totals.Income.StringFixed(2),
		d.Totals.Expense.StringFixed(2),
		d.Totals.Balance.StringFixed(2),
	}})

	fmt.Fprintln(w, "\nTrend")
	rows := make([][]string, 0, len(d.Trend))
	for _, p := range d.Trend {
		rows = append(rows, []string{p.Date.Format(model.DateFormat), p.Kind.String(), p.Amount.StringFixed(2)})
	}
	writeTable(w, []string{"Date", "Kind", "Amount"}, rows)

	fmt.Fprintln(w, "\nExpenses by category")
	rows = make([][]string, 0, len(d.Breakdown))
	for _, c := range d.Breakdown {
		rows = append(rows, []string{c.Category, c.Amount.StringFixed(2)})
	}
	writeTable(w, []string{"Category", "Amount"}, rows)

	fmt.Fprintln(w, "\nRecent transactions")
	rows = make([][]string, 0, len(d.Recent))
	for _, t := range d.Recent {
		rows = append(rows, []string{t.Date.Format(model.DateFormat), t.Kind.String(), t.Category, t.Amount.StringFixed(2), t.Note})
	}
	writeTable(w, []string{"Date", "Kind", "Category", "Amount", "Note"}, rows)
}

func writeTable(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(rows)
	tw.Render()
}
