// Package csvfile stores each owner's ledger as a CSV file under a root
// directory, alongside a users.csv credential file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fintrack-dev/fintrack/internal/id"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/store"
)

// Store is a store.Store backed by plain CSV files.
type Store struct {
	root string
	mu   sync.Mutex
}

var _ store.Store = (*Store)(nil)

// Open returns a Store rooted at root, creating the directory if needed.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Close is a no-op; files are opened per call.
func (s *Store) Close() error { return nil }

// FetchAll returns every record in the owner's ledger in file order.
func (s *Store) FetchAll(_ context.Context, owner string) ([]model.Record, error) {
	path, err := s.ledgerPath(owner)
	if err != nil {
		return nil, store.Wrap("fetch", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := readLedger(path)
	if err != nil {
		return nil, store.Wrap("fetch", err)
	}
	for i := range recs {
		recs[i].Owner = owner
	}
	return recs, nil
}

// Append adds rec to the owner's ledger and returns the assigned ID, which
// is sequential within the transaction's month.
func (s *Store) Append(_ context.Context, owner string, rec model.Record) (string, error) {
	path, err := s.ledgerPath(owner)
	if err != nil {
		return "", store.Wrap("append", err)
	}

	date, err := time.Parse(model.DateFormat, rec.Date)
	if err != nil {
		return "", store.Wrap("append", fmt.Errorf("record date: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := readLedger(path)
	if err != nil {
		return "", store.Wrap("append", err)
	}
	ids := make([]string, len(existing))
	for i, r := range existing {
		ids[i] = r.ID
	}

	year, month := date.Year(), int(date.Month())
	rec.ID = id.Format(year, month, id.NextSeq(ids, year, month))

	if err := appendLedger(path, rec); err != nil {
		return "", store.Wrap("append", err)
	}
	return rec.ID, nil
}

// CreateUser adds a credential row. Returns store.ErrUserExists if the
// username is taken.
func (s *Store) CreateUser(_ context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return store.Wrap("create user", err)
	}
	if _, ok := users[username]; ok {
		return store.ErrUserExists
	}

	if err := appendUser(s.usersPath(), username, passwordHash); err != nil {
		return store.Wrap("create user", err)
	}
	return nil
}

// PasswordHash returns the stored hash for username.
func (s *Store) PasswordHash(_ context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return "", store.Wrap("lookup user", err)
	}
	hash, ok := users[username]
	if !ok {
		return "", store.ErrUserNotFound
	}
	return hash, nil
}

func (s *Store) ledgerPath(owner string) (string, error) {
	if owner == "" {
		return "", errors.New("owner is empty")
	}
	dir := url.PathEscape(owner)
	if dir == "." || dir == ".." {
		return "", fmt.Errorf("invalid owner %q", owner)
	}
	return filepath.Join(s.root, "ledgers", dir, "ledger.csv"), nil
}

func (s *Store) usersPath() string {
	return filepath.Join(s.root, "users.csv")
}

func (s *Store) readUsers() (map[string]string, error) {
	f, err := os.Open(s.usersPath())
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening users: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 2
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}

	users := make(map[string]string, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		users[row[0]] = row[1]
	}
	return users, nil
}

func readLedger(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	recs, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return recs, nil
}

// appendLedger adds rec to the ledger at path. A new file gets the header
// row first.
func appendLedger(path string, rec model.Record) error {
	f, isNew, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if isNew {
		return WriteRecords(f, []model.Record{rec})
	}
	return AppendRecords(f, []model.Record{rec})
}

func appendUser(path, username, passwordHash string) error {
	f, isNew, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if isNew {
		if err := cw.Write(strings.Split(UsersHeader, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write([]string{username, passwordHash}); err != nil {
		return fmt.Errorf("writing user: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// openAppend opens path for appending, creating it and its directory if
// needed. isNew reports whether the file did not exist before.
func openAppend(path string) (f *os.File, isNew bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, fmt.Errorf("creating dir: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	return f, isNew, nil
}
