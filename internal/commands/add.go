package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activity"
	"github.com/fintrack-dev/fintrack/internal/model"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		creds credentials
		rec   model.Record
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rec.Date == "" {
				rec.Date = time.Now().Format(model.DateFormat)
			}
			return withApp(opts, func(a *app) error {
				owner, err := a.authenticate(cmd.Context(), &creds)
				if err != nil {
					return err
				}
				id, err := a.ledger.Add(cmd.Context(), owner, rec)
				if err != nil {
					return err
				}
				a.record(owner, activity.ActionAdd, strings.TrimSpace(rec.Kind+" "+rec.Amount+" "+rec.Category), id)
				fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %s\n", id)
				return nil
			})
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringVar(&rec.Date, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&rec.Kind, "kind", "", "Income, Expense or Saving (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().StringVar(&rec.Amount, "amount", "", "non-negative amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&rec.Category, "category", "", "category label")
	cmd.Flags().StringVar(&rec.Note, "note", "", "free-form note")

	return cmd
}
