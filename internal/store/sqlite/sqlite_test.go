package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/store"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "fintrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_MigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestAppendAndFetchAll(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	recs := []model.Record{
		{Date: "2025-01-10", Kind: "Expense", Category: "Food", Amount: "10.00", Note: "a"},
		{Date: "2025-01-05", Kind: "Income", Category: "Salary", Amount: "500.00", Note: "b"},
	}
	var ids []string
	for _, r := range recs {
		id, err := s.Append(ctx, "alice", r)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := s.Append(ctx, "bob", recs[0])
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, ids)

	got, err := s.FetchAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i, r := range got {
		assert.Equal(t, ids[i], r.ID)
		assert.Equal(t, "alice", r.Owner)
		assert.Equal(t, recs[i].Date, r.Date)
		assert.Equal(t, recs[i].Kind, r.Kind)
		assert.Equal(t, recs[i].Category, r.Category)
		assert.Equal(t, recs[i].Amount, r.Amount)
		assert.Equal(t, recs[i].Note, r.Note)
	}

	got, err = s.FetchAll(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAll_CanceledContext(t *testing.T) {
	s := openTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchAll(ctx, "alice")
	var se *store.Error
	assert.ErrorAs(t, err, &se)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	_, err := s.PasswordHash(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	require.NoError(t, s.CreateUser(ctx, "alice", "hash-a"))
	assert.ErrorIs(t, s.CreateUser(ctx, "alice", "other"), store.ErrUserExists)

	hash, err := s.PasswordHash(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash-a", hash)
}
