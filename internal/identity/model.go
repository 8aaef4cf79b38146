package identity

import "time"

// Roles assignable to users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer account. PasswordHash and Salt never
// leave this package; every outward representation goes through Sanitize.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Salt         []byte
	Role         string
	CreatedAt    time.Time
}

// Sanitized is the minimal identity projection safe to embed in tokens and
// session records.
type Sanitized struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Sanitize projects a user down to the fields allowed outside the credential store.
func Sanitize(u User) Sanitized {
	return Sanitized{ID: u.ID, Role: u.Role}
}
