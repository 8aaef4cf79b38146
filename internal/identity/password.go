package identity

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. The iteration count trades offline brute-force cost
// against login latency; changing it invalidates stored hashes.
const (
	hashIterations = 310_000
	hashKeyLen     = 32
	saltLen        = 16
)

// HashPassword derives the stored key for a password and salt.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLen, sha256.New)
}

// VerifyPassword reports whether the password matches the stored hash. The
// comparison is constant-time over the hash contents.
func VerifyPassword(password string, salt, hash []byte) bool {
	derived := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLen, sha256.New)
	return hmac.Equal(derived, hash)
}

// NewSalt returns a fresh random salt for password hashing.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
