package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/activity"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/report"
)

// emptySelectionWarning is shown instead of producing an empty report.
const emptySelectionWarning = "please select at least one transaction kind"

func newReportCommand(opts *rootOptions) *cobra.Command {
	var (
		creds  credentials
		kinds  []string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a transaction report",
		Long: "Export the user's transactions, filtered by kind, as PDF, text or CSV. Use --output - to\n" +
			"write to stdout. Passing --kind with no value selects nothing and produces no report.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed := model.Kinds()
			if cmd.Flags().Changed("kind") {
				parsed, err := report.ParseKinds(kinds)
				if err != nil {
					return err
				}
				allowed = parsed
			}

			return withApp(opts, func(a *app) error {
				if len(allowed) == 0 {
					a.logger.Warn(emptySelectionWarning)
					fmt.Fprintln(cmd.OutOrStdout(), "Warning: "+emptySelectionWarning)
					return nil
				}

				f := a.cfg.Report.Format
				if cmd.Flags().Changed("format") {
					f = format
				}
				renderer, err := report.RendererFor(f)
				if err != nil {
					return err
				}

				owner, err := a.authenticate(cmd.Context(), &creds)
				if err != nil {
					return err
				}
				txns, err := a.ledger.Load(cmd.Context(), owner)
				if err != nil {
					return err
				}

				selected := report.Filter(txns, allowed)
				art, err := report.Export(renderer, report.Header{
					Title:       a.cfg.Report.Title,
					Owner:       owner,
					GeneratedAt: time.Now(),
				}, selected)
				if err != nil {
					return err
				}

				if output == "-" {
					_, err := cmd.OutOrStdout().Write(art.Data)
					return err
				}
				path := output
				if path == "" {
					path = art.Filename
				}
				if err := os.WriteFile(path, art.Data, 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}

				a.logger.Info("report exported",
					zap.String("user", owner),
					zap.String("path", path),
					zap.String("mime", art.MIMEType),
					zap.Int("rows", len(selected)))
				a.record(owner, activity.ActionExport, fmt.Sprintf("%s, %d rows", filepath.Base(path), len(selected)), "")
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", len(selected), path)
				return nil
			})
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "transaction kinds to include (default all)")
	cmd.Flags().StringVar(&format, "format", "pdf", "report format: pdf, text or csv (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default "+report.FileStem+".<ext>)")

	return cmd
}
