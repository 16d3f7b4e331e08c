package report

import (
	"fmt"

	"github.com/fintrack-dev/fintrack/internal/ledger"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Filter returns the transactions whose kind is in allowed, in their original
// order. An empty allowed set selects nothing; callers surface that to the
// user as a warning. Unknown kinds in allowed never match.
func Filter(txns []model.Transaction, allowed []model.Kind) []model.Transaction {
	out := []model.Transaction{}
	if len(allowed) == 0 {
		return out
	}

	set := make(map[model.Kind]bool, len(allowed))
	for _, k := range allowed {
		set[k] = true
	}
	for _, t := range txns {
		if set[t.Kind] {
			out = append(out, t)
		}
	}
	return out
}

// ParseKinds converts user-supplied labels into kinds, dropping duplicates.
func ParseKinds(labels []string) ([]model.Kind, error) {
	var kinds []model.Kind
	seen := make(map[model.Kind]bool)
	for _, l := range labels {
		k, err := ledger.ParseKind(l)
		if err != nil {
			return nil, fmt.Errorf("parsing kind filter: %w", err)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}
