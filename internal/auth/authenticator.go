package auth

import (
	"context"

	"github.com/shoply/shoply/internal/identity"
)

// Credentials carries whichever proof of identity a strategy consumes.
type Credentials struct {
	Email    string
	Password string
	Token    string
}

// Authenticator turns request credentials into a sanitized identity or an
// error. Implementations are selected per route at composition time and are
// safe for concurrent use.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (identity.Sanitized, error)
}

// PasswordAuthenticator implements the login strategy: email/password lookup
// and verification against the credential store.
type PasswordAuthenticator struct {
	ids *identity.Service
}

// NewPasswordAuthenticator builds the password-based strategy.
func NewPasswordAuthenticator(ids *identity.Service) *PasswordAuthenticator {
	return &PasswordAuthenticator{ids: ids}
}

// Authenticate verifies the email/password pair. Unknown users and wrong
// passwords surface as the same identity.ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, creds Credentials) (identity.Sanitized, error) {
	user, err := a.ids.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return identity.Sanitized{}, err
	}
	return identity.Sanitize(user), nil
}

// TokenAuthenticator implements the bearer-token strategy: signature
// verification followed by a fresh user load so role changes take effect
// without re-login.
type TokenAuthenticator struct {
	issuer *Issuer
	repo   identity.Repository
}

// NewTokenAuthenticator builds the token-based strategy.
func NewTokenAuthenticator(issuer *Issuer, repo identity.Repository) *TokenAuthenticator {
	return &TokenAuthenticator{issuer: issuer, repo: repo}
}

// Authenticate verifies the token signature and resolves the current user.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, creds Credentials) (identity.Sanitized, error) {
	claims, err := a.issuer.Verify(creds.Token)
	if err != nil {
		return identity.Sanitized{}, err
	}

	user, err := a.repo.FindByID(ctx, claims.ID)
	if err != nil {
		return identity.Sanitized{}, ErrInvalidToken
	}

	return identity.Sanitize(user), nil
}
