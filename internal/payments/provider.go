package payments

import "context"

// EventPaymentSucceeded is the only event kind that drives a state
// transition; everything else is acknowledged and ignored.
const EventPaymentSucceeded = "payment_intent.succeeded"

// IntentInput captures the information required to open a payment intent
// with the provider. Amount is in the provider's minor units.
type IntentInput struct {
	Amount   int64
	Currency string
	OrderID  string
}

// Event is the normalized form of a verified provider notification.
type Event struct {
	Type    string
	OrderID string
}

// Provider connects to the upstream payment processor. VerifyWebhook must be
// given the exact raw bytes the provider signed.
type Provider interface {
	CreateIntent(ctx context.Context, input IntentInput) (clientSecret string, err error)
	VerifyWebhook(payload []byte, sigHeader string) (Event, error)
}
