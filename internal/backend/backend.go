// Package backend opens the configured store.Store implementation.
package backend

import (
	"fmt"

	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/store"
	"github.com/fintrack-dev/fintrack/internal/store/csvfile"
	"github.com/fintrack-dev/fintrack/internal/store/sqlite"
)

// Open returns the backend named by cfg.Storage.Backend, with relative
// paths resolved against baseDir.
func Open(cfg *config.Config, baseDir string) (store.Store, error) {
	path := cfg.StoragePath(baseDir)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	case config.BackendCSV:
		s, err := csvfile.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening csv store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
