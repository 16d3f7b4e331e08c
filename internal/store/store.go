// Package store defines the persistence boundary shared by the storage
// backends in its subpackages.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack-dev/fintrack/internal/model"
)

var (
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a username has no stored credential.
	ErrUserNotFound = errors.New("user not found")
)

// Store persists transaction records and user credentials.
type Store interface {
	FetchAll(ctx context.Context, owner string) ([]model.Record, error)
	Append(ctx context.Context, owner string, rec model.Record) (string, error)
	CreateUser(ctx context.Context, username, passwordHash string) error
	PasswordHash(ctx context.Context, username string) (string, error)
	Close() error
}

// Error reports a failed storage operation. Callers must assume the
// operation did not complete.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error for op, or nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
