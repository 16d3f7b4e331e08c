package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/activity"
	"github.com/fintrack-dev/fintrack/internal/importer"
	"github.com/fintrack-dev/fintrack/internal/ledger"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var (
		creds  credentials
		format string
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statement CSV files",
		Long: "Import bank statement CSV files into the ledger. With no arguments, every CSV in the\n" +
			"project's import/ directory is imported and then moved to import/processed/.\n\n" +
			"Rows that fail validation are skipped. If storage fails part-way through a file, the\n" +
			"rows before the failure stay in the ledger, the file is left in place, and the error\n" +
			"and the activity log both say how many rows were stored. Remove those rows from the\n" +
			"file before importing it again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := importer.DefaultRegistry().Lookup(format)
			if err != nil {
				return err
			}

			return withApp(opts, func(a *app) error {
				owner, err := a.authenticate(cmd.Context(), &creds)
				if err != nil {
					return err
				}

				inbox := importer.NewInbox(a.baseDir)
				fromInbox := len(args) == 0
				var statements []importer.Statement
				if fromInbox {
					statements, err = inbox.Pending()
					if err != nil {
						return err
					}
				} else {
					for _, p := range args {
						statements = append(statements, importer.Statement{Name: filepath.Base(p), Path: p})
					}
				}
				if len(statements) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No files to import")
					return nil
				}

				for _, st := range statements {
					res, err := importStatement(cmd, a, parser, owner, st.Path)
					if res.added > 0 || err == nil {
						a.record(owner, activity.ActionImport, res.summary(st.Name, err != nil), "")
					}
					if err != nil {
						return fmt.Errorf("importing %s: %w", st.Name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s (%d skipped)\n", res.added, st.Name, res.skipped)

					if fromInbox {
						if _, err := inbox.Archive(st.Name); err != nil {
							return err
						}
					}
				}
				return nil
			})
		},
	}

	creds.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "chase", "bank export format")

	return cmd
}

type importResult struct {
	total   int
	added   int
	skipped int
}

func (r importResult) summary(name string, partial bool) string {
	if partial {
		return fmt.Sprintf("%s: partial, %d of %d rows added before a storage failure", name, r.added, r.total)
	}
	return fmt.Sprintf("%s: %d added, %d skipped", name, r.added, r.skipped)
}

// importStatement adds every parsed row through the ledger. Rows that fail
// validation are logged and skipped; any other failure stops the import
// and the result counts what was stored before it.
func importStatement(cmd *cobra.Command, a *app, parser importer.Parser, owner, path string) (importResult, error) {
	recs, err := importer.ReadStatement(parser, path)
	if err != nil {
		return importResult{}, err
	}

	res := importResult{total: len(recs)}
	for i, rec := range recs {
		_, err := a.ledger.Add(cmd.Context(), owner, rec)
		var verr ledger.ValidationError
		if errors.As(err, &verr) {
			a.logger.Warn("skipping invalid row",
				zap.String("file", filepath.Base(path)),
				zap.Int("row", i+2),
				zap.Error(err))
			res.skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("%d of %d rows stored before failure at row %d: %w", res.added, res.total, i+2, err)
		}
		res.added++
	}
	return res, nil
}

