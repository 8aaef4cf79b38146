package orders

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shoply/shoply/internal/middleware"
)

// Handler exposes order endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an order handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
}

// Create places a new order for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Create(c.UserContext(), CreateInput{
		UserID:      ident.ID,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// Get returns a single order.
func (h *Handler) Get(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "order not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(order)
}
