package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shoply/shoply/internal/identity"
)

// TokenCookie is the cookie the token extractor checks before the
// Authorization header.
const TokenCookie = "jwt"

// ErrInvalidToken covers malformed tokens, bad signatures and tokens whose
// subject no longer exists.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the sanitized identity inside a bearer token.
type Claims struct {
	jwt.RegisteredClaims
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Issuer signs self-contained bearer tokens with a symmetric secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds a token issuer. A zero ttl issues tokens without an
// expiry claim.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a token embedding the sanitized identity.
func (i *Issuer) Issue(ident identity.Sanitized) (string, error) {
	claims := Claims{ID: ident.ID, Role: ident.Role}
	if i.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(i.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks the token signature and returns the embedded claims. No
// server-side lookup is involved.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return *claims, nil
}
