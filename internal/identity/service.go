package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for both unknown users and password
// mismatches so callers cannot tell which condition failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages account lifecycle and credential verification.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new customer account with a freshly salted password hash.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return User{}, errors.New("email is required")
	}
	if len(password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}

	salt, err := NewSalt()
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies an email/password pair. Lookup failures and password
// mismatches are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.Salt, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
