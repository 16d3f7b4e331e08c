package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/report"
)

// FileName is the default config file name.
const FileName = "fintrack.yaml"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendCSV    = "csv"
)

// Config represents the top-level fintrack.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Report  ReportConfig  `yaml:"report"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where ledgers live. For sqlite Path is the database
// file; for csv it is a directory.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ReportConfig holds defaults for exported reports and the dashboard.
type ReportConfig struct {
	Title  string `yaml:"title"`
	Format string `yaml:"format"`
	Recent int    `yaml:"recent"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a fintrack.yaml file from disk, then applies any .env file
// next to it and FINTRACK_* environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// A missing .env is fine; variables already set win.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join("data", "fintrack.db"),
		},
		Report: ReportConfig{
			Title:  report.DefaultTitle,
			Format: "pdf",
			Recent: aggregate.DefaultRecent,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overrides fields from FINTRACK_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("FINTRACK_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("FINTRACK_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("FINTRACK_REPORT_FORMAT"); v != "" {
		c.Report.Format = v
	}
	if v := os.Getenv("FINTRACK_REPORT_RECENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FINTRACK_REPORT_RECENT: %w", err)
		}
		c.Report.Recent = n
	}
	if v := os.Getenv("FINTRACK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendSQLite, BackendCSV:
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path: must not be empty"))
	}
	if _, err := report.RendererFor(c.Report.Format); err != nil {
		errs = append(errs, fmt.Errorf("report.format: %w", err))
	}
	if c.Report.Recent < 0 {
		errs = append(errs, fmt.Errorf("report.recent: must not be negative, got %d", c.Report.Recent))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// StoragePath resolves Storage.Path against baseDir when it is relative.
func (c *Config) StoragePath(baseDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(baseDir, c.Storage.Path)
}
