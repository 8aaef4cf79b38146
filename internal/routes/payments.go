package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shoply/shoply/internal/middleware"
	"github.com/shoply/shoply/internal/payments"
)

// RegisterPaymentRoutes wires the intent-creation endpoint. Client retries
// carrying an Idempotency-Key replay the stored response instead of opening
// a second intent.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler, d Deps) {
	if d.Cache != nil {
		r.Post("/create-payment-intent", middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger), h.CreateIntent)
		return
	}
	r.Post("/create-payment-intent", h.CreateIntent)
}
