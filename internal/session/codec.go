// Package session provides the identity codec for cookie-based continuity
// and the Redis storage backend for the Fiber session middleware.
package session

import "github.com/shoply/shoply/internal/identity"

// Session variable names under which the identity record is stored.
const (
	KeyUserID = "uid"
	KeyRole   = "role"
)

// Record is the minimal serialized identity held in a server-side session.
type Record struct {
	ID   string
	Role string
}

// Encode projects a sanitized identity into its session record form.
func Encode(ident identity.Sanitized) Record {
	return Record{ID: ident.ID, Role: ident.Role}
}

// Decode restores an identity from a session record. It reports false when
// the record holds no identity; no store lookup is performed.
func Decode(rec Record) (identity.Sanitized, bool) {
	if rec.ID == "" {
		return identity.Sanitized{}, false
	}
	return identity.Sanitized{ID: rec.ID, Role: rec.Role}, true
}
