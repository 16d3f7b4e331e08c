package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/activity"
)

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				if err := a.identity.Register(cmd.Context(), creds.user, creds.resolvedPassword()); err != nil {
					return fmt.Errorf("registering %s: %w", creds.user, err)
				}
				a.logger.Info("user registered", zap.String("user", creds.user))
				a.record(creds.user, activity.ActionRegister, "", "")
				fmt.Fprintf(cmd.OutOrStdout(), "Registered user %s\n", creds.user)
				return nil
			})
		},
	}

	creds.bind(cmd)
	return cmd
}
