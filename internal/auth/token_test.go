package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shoply/shoply/internal/identity"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer([]byte("top-secret"), 0)

	token, err := issuer.Issue(identity.Sanitized{ID: "u1", Role: identity.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID != "u1" || claims.Role != identity.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyNoExpiryByDefault(t *testing.T) {
	issuer := NewIssuer([]byte("top-secret"), 0)

	token, err := issuer.Issue(identity.Sanitized{ID: "u1", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no expiry claim, got %v", claims.ExpiresAt)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	issuer := NewIssuer([]byte("top-secret"), 0)

	token, err := issuer.Issue(identity.Sanitized{ID: "u1", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := issuer.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewIssuer([]byte("right-secret"), 0).Issue(identity.Sanitized{ID: "u1", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer([]byte("wrong-secret"), 0).Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpiredWhenTTLConfigured(t *testing.T) {
	issuer := NewIssuer([]byte("top-secret"), -time.Minute)

	token, err := issuer.Issue(identity.Sanitized{ID: "u1", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	issuer := NewIssuer([]byte("top-secret"), 0)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := issuer.Verify(tok); err != ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "u1", Role: identity.RoleAdmin})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := NewIssuer([]byte("top-secret"), 0).Verify(tokenString); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg none, got %v", err)
	}
}
