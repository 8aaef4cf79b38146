package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// MetadataOrderID is the intent metadata key linking a provider intent back
// to a local order. The webhook path depends on it being set on every intent.
const MetadataOrderID = "orderId"

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider builds a Stripe-backed provider.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, webhookSecret: webhookSecret}
}

// CreateIntent opens a payment intent tagged with the order identifier and
// returns its client secret.
func (p *StripeProvider) CreateIntent(ctx context.Context, input IntentInput) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(input.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataOrderID, input.OrderID)

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}

// VerifyWebhook checks the provider signature over the raw payload and
// normalizes the event.
func (p *StripeProvider) VerifyWebhook(payload []byte, sigHeader string) (Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return Event{}, err
	}

	out := Event{Type: string(event.Type)}
	if out.Type == EventPaymentSucceeded {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return Event{}, fmt.Errorf("decode payment intent: %w", err)
		}
		out.OrderID = intent.Metadata[MetadataOrderID]
	}

	return out, nil
}
