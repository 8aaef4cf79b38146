package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/shoply/shoply/internal/auth"
	"github.com/shoply/shoply/internal/identity"
	"github.com/shoply/shoply/internal/session"
)

const (
	localUserID = "user_id"
	localRole   = "user_role"
)

// AuthGate guards protected routes. It first looks for a bearer token (the
// jwt cookie wins over the Authorization header) and verifies it against the
// credential store; with no token present it falls back to the server-side
// session, which is decoded without touching the credential store.
func AuthGate(tokens *auth.TokenAuthenticator, sessions *fsession.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := extractToken(c); token != "" {
			ident, err := tokens.Authenticate(c.UserContext(), auth.Credentials{Token: token})
			if err != nil {
				return fiber.NewError(http.StatusUnauthorized, "invalid token")
			}
			setIdentity(c, ident)
			return c.Next()
		}

		if sessions != nil {
			sess, err := sessions.Get(c)
			if err == nil {
				rec := session.Record{
					ID:   valueString(sess.Get(session.KeyUserID)),
					Role: valueString(sess.Get(session.KeyRole)),
				}
				if ident, ok := session.Decode(rec); ok {
					setIdentity(c, ident)
					return c.Next()
				}
			}
		}

		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
}

// Identity returns the authenticated identity attached by AuthGate.
func Identity(c *fiber.Ctx) (identity.Sanitized, bool) {
	id, _ := c.Locals(localUserID).(string)
	role, _ := c.Locals(localRole).(string)
	if id == "" {
		return identity.Sanitized{}, false
	}
	return identity.Sanitized{ID: id, Role: role}, true
}

// SetIdentity attaches an identity to the request. Exposed for handler tests
// that bypass the gate.
func SetIdentity(c *fiber.Ctx, ident identity.Sanitized) {
	setIdentity(c, ident)
}

func setIdentity(c *fiber.Ctx, ident identity.Sanitized) {
	c.Locals(localUserID, ident.ID)
	c.Locals(localRole, ident.Role)
}

func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(auth.TokenCookie); cookie != "" {
		return cookie
	}
	authz := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("Bearer "):])
	}
	return ""
}

func valueString(v interface{}) string {
	s, _ := v.(string)
	return s
}
