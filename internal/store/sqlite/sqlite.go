// Package sqlite stores ledgers and credentials in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/store"
)

var transactionColumns = []string{"id", "owner", "date", "kind", "category", "amount", "note"}

// Store is a store.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database at dbPath and migrates it.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FetchAll returns every record owned by owner in insertion order.
func (s *Store) FetchAll(ctx context.Context, owner string) ([]model.Record, error) {
	query, args, err := sq.Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"owner": owner}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, store.Wrap("fetch", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.Wrap("fetch", err)
	}
	defer rows.Close()

	var recs []model.Record
	for rows.Next() {
		var (
			id  int64
			rec model.Record
		)
		if err := rows.Scan(&id, &rec.Owner, &rec.Date, &rec.Kind, &rec.Category, &rec.Amount, &rec.Note); err != nil {
			return nil, store.Wrap("fetch", err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("fetch", err)
	}
	return recs, nil
}

// Append inserts rec for owner and returns its row id.
func (s *Store) Append(ctx context.Context, owner string, rec model.Record) (string, error) {
	query, args, err := sq.Insert("transactions").
		Columns(transactionColumns[1:]...).
		Values(owner, rec.Date, rec.Kind, rec.Category, rec.Amount, rec.Note).
		ToSql()
	if err != nil {
		return "", store.Wrap("append", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return "", store.Wrap("append", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", store.Wrap("append", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// CreateUser stores a credential hash. Returns store.ErrUserExists if the
// username is taken.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	query, args, err := sq.Insert("users").
		Columns("username", "password_hash", "created_at").
		Values(username, passwordHash, time.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT (username) DO NOTHING").
		ToSql()
	if err != nil {
		return store.Wrap("create user", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.Wrap("create user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.Wrap("create user", err)
	}
	if n == 0 {
		return store.ErrUserExists
	}
	return nil
}

// PasswordHash returns the stored hash for username.
func (s *Store) PasswordHash(ctx context.Context, username string) (string, error) {
	query, args, err := sq.Select("password_hash").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return "", store.Wrap("lookup user", err)
	}

	var hash string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrUserNotFound
	}
	if err != nil {
		return "", store.Wrap("lookup user", err)
	}
	return hash, nil
}
