package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/activity"
	"github.com/fintrack-dev/fintrack/internal/backend"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/identity"
	"github.com/fintrack-dev/fintrack/internal/ledger"
	"github.com/fintrack-dev/fintrack/internal/logging"
	"github.com/fintrack-dev/fintrack/internal/store"
)

// passwordEnv supplies the password when --password is not given.
const passwordEnv = "FINTRACK_PASSWORD"

// app is the wiring shared by commands that touch a project.
type app struct {
	cfg      *config.Config
	baseDir  string
	logger   *zap.Logger
	store    store.Store
	ledger   *ledger.Service
	identity *identity.Service
}

func openApp(opts *rootOptions) (*app, error) {
	absConfig, err := filepath.Abs(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	cfg, err := config.Load(absConfig)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", absConfig, err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(absConfig)
	st, err := backend.Open(cfg, baseDir)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	logger.Debug("project opened",
		zap.String("config", absConfig),
		zap.String("backend", cfg.Storage.Backend))

	return &app{
		cfg:      cfg,
		baseDir:  baseDir,
		logger:   logger,
		store:    st,
		ledger:   ledger.NewService(st, logger),
		identity: identity.NewService(st),
	}, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.store.Close()
}

// record appends to the project's activity log. The action has already
// happened, so a failed write is logged rather than returned.
func (a *app) record(user, action, details, txnID string) {
	err := activity.Append(a.baseDir, activity.Entry{
		Timestamp:     time.Now(),
		User:          user,
		Action:        action,
		Details:       details,
		TransactionID: txnID,
	})
	if err != nil {
		a.logger.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
	}
}

// credentials are the --user/--password flags of commands that act on a ledger.
type credentials struct {
	user     string
	password string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.user, "user", "", "username (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&c.password, "password", "", "password (default $"+passwordEnv+")")
}

func (c *credentials) resolvedPassword() string {
	if c.password != "" {
		return c.password
	}
	return os.Getenv(passwordEnv)
}

// authenticate returns the username the ledger should be scoped to.
func (a *app) authenticate(ctx context.Context, c *credentials) (string, error) {
	if err := a.identity.Authenticate(ctx, c.user, c.resolvedPassword()); err != nil {
		a.logger.Warn("authentication failed", zap.String("user", c.user))
		return "", fmt.Errorf("authenticating %s: %w", c.user, err)
	}
	return c.user, nil
}

// withApp opens the project, runs fn, and closes it.
func withApp(opts *rootOptions, fn func(a *app) error) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
