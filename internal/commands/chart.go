package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/chart"
)

func newChartCommand(opts *rootOptions) *cobra.Command {
	var (
		creds credentials
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render trend and expense breakdown charts as PNG",
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
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating chart dir: %w", err)
				}

				trend := aggregate.Trend(txns)
				breakdown := aggregate.SortedBreakdown(txns)

				var g errgroup.Group
				results := make([]string, 2)
				g.Go(func() error {
					return writeChart(a, filepath.Join(dir, "trend.png"), &results[0], func(w io.Writer) error {
						return chart.RenderTrend(w, trend)
					})
				})
				g.Go(func() error {
					return writeChart(a, filepath.Join(dir, "breakdown.png"), &results[1], func(w io.Writer) error {
						return chart.RenderBreakdown(w, breakdown)
					})
				})
				if err := g.Wait(); err != nil {
					return err
				}

				for _, r := range results {
					fmt.Fprintln(cmd.OutOrStdout(), r)
				}
				return nil
			})
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")

	return cmd
}

// writeChart renders into path and stores a one-line outcome in result.
// Charts with nothing to plot are skipped, not treated as failures.
func writeChart(a *app, path string, result *string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}

	err = render(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, chart.ErrNoData) {
		a.logger.Warn("chart skipped", zap.String("path", path), zap.Error(err))
		*result = "Skipped " + filepath.Base(path) + ": no data"
		return os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}
	*result = "Wrote " + path
	return nil
}
