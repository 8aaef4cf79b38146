package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultCurrency = "inr"

// Service exposes order operations and owns the payment-status state machine.
type Service struct {
	repo Repository
}

// NewService builds an order service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to place an order.
type CreateInput struct {
	UserID      string
	TotalAmount float64
	Currency    string
}

// Create places a new order in the pending payment state.
func (s *Service) Create(ctx context.Context, input CreateInput) (Order, error) {
	if input.TotalAmount <= 0 {
		return Order{}, fmt.Errorf("total amount must be positive")
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	order := Order{
		ID:            uuid.New().String(),
		UserID:        input.UserID,
		TotalAmount:   input.TotalAmount,
		Currency:      currency,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return Order{}, err
	}

	return order, nil
}

// Get retrieves an order.
func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.FindByID(ctx, id)
}

// MarkPaymentReceived transitions the order to the received state. Calling it
// on an already-received order is a no-op, so redelivered provider events are
// safe.
func (s *Service) MarkPaymentReceived(ctx context.Context, id string) (Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if order.PaymentStatus == PaymentStatusReceived {
		return order, nil
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, PaymentStatusReceived); err != nil {
		return Order{}, err
	}
	order.PaymentStatus = PaymentStatusReceived

	return order, nil
}
