package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/backend"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/importer"
)

func newInitCommand() *cobra.Command {
	var storageBackend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new FinTrack project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, storageBackend)
		},
	}

	cmd.Flags().StringVar(&storageBackend, "backend", config.BackendSQLite, "storage backend (sqlite or csv)")

	return cmd
}

func runInit(out io.Writer, dir, storageBackend string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = storageBackend
	if storageBackend == config.BackendCSV {
		cfg.Storage.Path = "data"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := importer.NewInbox(dir).Prepare(); err != nil {
		return err
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Opening the store creates the database or data directory.
	st, err := backend.Open(cfg, dir)
	if err != nil {
		return err
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	fmt.Fprintf(out, "Initialized FinTrack project at %s (%s storage)\n", dir, storageBackend)
	return nil
}
