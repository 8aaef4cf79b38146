package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/shoply/shoply/internal/notification"
	"github.com/shoply/shoply/internal/orders"
)

const intentCurrency = "inr"

var (
	// ErrInvalidAmount rejects non-positive totals and totals that do not
	// convert exactly to minor units.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidSignature indicates the webhook payload failed signature
	// verification and was not processed.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)

// Service creates provider payment intents and reconciles provider webhooks
// against order payment state.
type Service struct {
	provider Provider
	orders   *orders.Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a payment service.
func NewService(provider Provider, orderSvc *orders.Service, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{provider: provider, orders: orderSvc, notifier: notifier, logger: logger}
}

// CreateIntent opens a provider payment intent for the order total and
// returns only the client-facing secret. No local state is mutated.
func (s *Service) CreateIntent(ctx context.Context, totalAmount float64, orderID string) (string, error) {
	if totalAmount <= 0 {
		return "", ErrInvalidAmount
	}
	if orderID == "" {
		return "", fmt.Errorf("order id is required")
	}

	minor, err := toMinorUnits(totalAmount)
	if err != nil {
		return "", err
	}

	secret, err := s.provider.CreateIntent(ctx, IntentInput{
		Amount:   minor,
		Currency: intentCurrency,
		OrderID:  orderID,
	})
	if err != nil {
		return "", err
	}

	return secret, nil
}

// ProcessWebhook verifies the signed payload and applies the event. The
// payload must be the unmodified raw request body. Events other than a
// payment success are acknowledged without effect.
func (s *Service) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.provider.VerifyWebhook(payload, sigHeader)
	if err != nil {
		s.logger.Error("webhook signature rejected", "error", err)
		return ErrInvalidSignature
	}

	switch event.Type {
	case EventPaymentSucceeded:
		return s.applyPaymentSucceeded(ctx, event)
	default:
		// Unhandled event kinds are acknowledged so the provider stops
		// retrying them.
		s.logger.Debug("ignoring webhook event", "type", event.Type)
		return nil
	}
}

func (s *Service) applyPaymentSucceeded(ctx context.Context, event Event) error {
	order, err := s.orders.MarkPaymentReceived(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			// Data-integrity gap: the intent referenced an order we do not
			// have. Surfacing a 5xx would only make the provider resend the
			// same event, so log loudly and acknowledge.
			s.logger.Error("webhook references unknown order", "order_id", event.OrderID)
			return nil
		}
		return fmt.Errorf("mark payment received: %w", err)
	}

	s.logger.Info("order payment received", "order_id", order.ID)

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindPaymentReceived,
			Destination: order.UserID,
			Body:        fmt.Sprintf("Payment received for order %s", order.ID),
		})
	}

	return nil
}

// toMinorUnits converts a decimal amount to the provider's integer minor
// units. Amounts that do not land on a whole minor unit are a caller error.
func toMinorUnits(amount float64) (int64, error) {
	scaled := amount * 100
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrInvalidAmount
	}
	return int64(rounded), nil
}
