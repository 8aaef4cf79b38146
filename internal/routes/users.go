package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shoply/shoply/internal/middleware"
)

// RegisterUserRoutes wires the authenticated profile endpoint.
func RegisterUserRoutes(r fiber.Router) {
	r.Get("/users/me", func(c *fiber.Ctx) error {
		ident, ok := middleware.Identity(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		return c.JSON(ident)
	})
}
