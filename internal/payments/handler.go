package payments

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const signatureHeader = "Stripe-Signature"

// Handler exposes the payment intent and webhook endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type intentRequest struct {
	TotalAmount float64 `json:"totalAmount"`
	OrderID     string  `json:"orderId"`
}

// CreateIntent opens a provider payment intent for an order.
func (h *Handler) CreateIntent(c *fiber.Ctx) error {
	var req intentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	secret, err := h.service.CreateIntent(c.UserContext(), req.TotalAmount, req.OrderID)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusBadGateway, "payment provider error")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"clientSecret": secret})
}

// Webhook receives asynchronous provider events. The body is passed through
// raw; parsing it before signature verification would invalidate the check.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	err := h.service.ProcessWebhook(c.UserContext(), c.Body(), c.Get(signatureHeader))
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "webhook processing failed")
	}

	return c.SendStatus(http.StatusOK)
}
