package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activity"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the user's activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				owner, err := a.authenticate(cmd.Context(), &creds)
				if err != nil {
					return err
				}
				entries, err := activity.Read(a.baseDir)
				if err != nil {
					return err
				}

				mine := activity.ForUser(entries, owner)
				rows := make([][]string, 0, len(mine))
				for _, e := range mine {
					rows = append(rows, []string{e.Timestamp.Local().Format(time.DateTime), e.Action, e.Details, e.TransactionID})
				}
				writeTable(cmd.OutOrStdout(), []string{"Time", "Action", "Details", "Transaction"}, rows)
				return nil
			})
		},
	}

	creds.bind(cmd)
	return cmd
}
