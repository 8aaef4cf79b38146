package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/shoply/shoply/internal/identity"
	"github.com/shoply/shoply/internal/session"
)

// Handler exposes register/login/logout endpoints.
type Handler struct {
	ids      *identity.Service
	password *PasswordAuthenticator
	issuer   *Issuer
	sessions *fsession.Store
}

// NewHandler constructs the auth handler.
func NewHandler(ids *identity.Service, password *PasswordAuthenticator, issuer *Issuer, sessions *fsession.Store) *Handler {
	return &Handler{ids: ids, password: password, issuer: issuer, sessions: sessions}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Register creates a new customer account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.ids.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(identity.Sanitize(user))
}

// Login verifies credentials, issues a bearer token and establishes a session.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	ident, err := h.password.Authenticate(c.UserContext(), Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, "login failed")
	}

	token, err := h.issuer.Issue(ident)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if err := h.establishSession(c, ident); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "login failed")
	}

	return c.Status(http.StatusOK).JSON(loginResponse{ID: ident.ID, Role: ident.Role, Token: token})
}

// Logout destroys the session and clears the token cookie.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if h.sessions != nil {
		if sess, err := h.sessions.Get(c); err == nil {
			_ = sess.Destroy()
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

func (h *Handler) establishSession(c *fiber.Ctx, ident identity.Sanitized) error {
	if h.sessions == nil {
		return nil
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}

	rec := session.Encode(ident)
	sess.Set(session.KeyUserID, rec.ID)
	sess.Set(session.KeyRole, rec.Role)
	return sess.Save()
}
