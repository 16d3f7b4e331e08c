package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Store is the persistence capability the ledger needs.
type Store interface {
	FetchAll(ctx context.Context, owner string) ([]model.Record, error)
	Append(ctx context.Context, owner string, rec model.Record) (string, error)
}

// Service validates transactions on the way into a Store and normalizes
// them on the way out.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a ledger Service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Add validates rec for owner and appends its canonical form. Returns the
// store-assigned ID. Invalid records never reach the store.
func (s *Service) Add(ctx context.Context, owner string, rec model.Record) (string, error) {
	rec.Owner = owner
	rec.ID = ""

	txn, err := Normalize(rec)
	if err != nil {
		return "", fmt.Errorf("validating transaction: %w", err)
	}

	id, err := s.store.Append(ctx, owner, txn.Record())
	if err != nil {
		return "", fmt.Errorf("appending transaction: %w", err)
	}

	s.logger.Debug("transaction added",
		zap.String("owner", owner),
		zap.String("id", id),
		zap.String("kind", txn.Kind.String()),
		zap.String("amount", txn.Amount.StringFixed(2)))
	return id, nil
}

// Load fetches and normalizes every transaction owned by owner, in store order.
func (s *Service) Load(ctx context.Context, owner string) ([]model.Transaction, error) {
	recs, err := s.store.FetchAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}

	txns, err := NormalizeAll(recs)
	if err != nil {
		return nil, fmt.Errorf("loading ledger for %s: %w", owner, err)
	}

	s.logger.Debug("ledger loaded", zap.String("owner", owner), zap.Int("transactions", len(txns)))
	return txns, nil
}
