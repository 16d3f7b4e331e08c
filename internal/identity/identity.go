// Package identity registers users and checks their passwords. The ledger
// only ever sees the authenticated username.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack-dev/fintrack/internal/store"
)

// ErrInvalidCredentials is returned for empty, unknown, or mismatched
// credentials. It never says which part was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUserExists is store.ErrUserExists, re-exported for callers of Register.
var ErrUserExists = store.ErrUserExists

// UserStore persists password hashes.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	PasswordHash(ctx context.Context, username string) (string, error)
}

// Service handles registration and authentication.
type Service struct {
	users UserStore
	cost  int
}

// NewService creates an identity Service using bcrypt's default cost.
func NewService(users UserStore) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// Register stores a new user with a bcrypt hash of password.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.users.CreateUser(ctx, username, string(hash)); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return ErrUserExists
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Authenticate checks password against the stored hash for username.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	hash, err := s.users.PasswordHash(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
