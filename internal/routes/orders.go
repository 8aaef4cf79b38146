package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shoply/shoply/internal/orders"
)

// RegisterOrderRoutes wires order endpoints.
func RegisterOrderRoutes(r fiber.Router, h *orders.Handler) {
	group := r.Group("/orders")
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
}
