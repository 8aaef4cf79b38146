package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shoply/shoply/internal/config"
	"github.com/shoply/shoply/internal/logging"
	"github.com/shoply/shoply/internal/orders"
	"github.com/shoply/shoply/internal/payments"
)

// scriptedProvider accepts webhooks signed with "valid" and echoes back the
// event encoded in the payload.
type scriptedProvider struct {
	lastIntent payments.IntentInput
}

func (p *scriptedProvider) CreateIntent(_ context.Context, input payments.IntentInput) (string, error) {
	p.lastIntent = input
	return fmt.Sprintf("%s_secret_test", input.OrderID), nil
}

func (p *scriptedProvider) VerifyWebhook(payload []byte, sigHeader string) (payments.Event, error) {
	if sigHeader != "valid" {
		return payments.Event{}, errors.New("signature mismatch")
	}
	var body struct {
		Type    string `json:"type"`
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return payments.Event{}, err
	}
	return payments.Event{Type: body.Type, OrderID: body.OrderID}, nil
}

func setupApp(t *testing.T) (*fiber.App, *scriptedProvider) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	cfg := config.Config{
		AppEnv:         "dev",
		JWTSecret:      "jwt-secret",
		SessionKey:     "session-secret",
		SessionTTL:     time.Hour,
		IdempotencyTTL: time.Hour,
	}

	provider := &scriptedProvider{}
	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Cache: cache, Logger: logging.Discard(), Provider: provider}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	return app, provider
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, mutate func(*http.Request)) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
}

func TestOrderPaymentFlow(t *testing.T) {
	app, provider := setupApp(t)

	// Register and log in.
	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", `{"email":"ada@example.com","password":"valid-password"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"valid-password"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var login struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	decode(t, resp, &login)

	withToken := func(r *http.Request) {
		r.Header.Set(fiber.HeaderAuthorization, "Bearer "+login.Token)
	}

	// Place an order.
	resp = doJSON(t, app, fiber.MethodPost, "/orders", `{"totalAmount":49.99,"currency":"inr"}`, withToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d", resp.StatusCode)
	}
	var order orders.Order
	decode(t, resp, &order)
	if order.PaymentStatus != orders.PaymentStatusPending {
		t.Fatalf("expected pending order, got %s", order.PaymentStatus)
	}

	// Open a payment intent.
	resp = doJSON(t, app, fiber.MethodPost, "/create-payment-intent",
		fmt.Sprintf(`{"totalAmount":49.99,"orderId":%q}`, order.ID), withToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create intent: expected 200, got %d", resp.StatusCode)
	}
	var intent struct {
		ClientSecret string `json:"clientSecret"`
	}
	decode(t, resp, &intent)
	if intent.ClientSecret == "" {
		t.Fatalf("expected client secret")
	}
	if provider.lastIntent.Amount != 4999 || provider.lastIntent.OrderID != order.ID {
		t.Fatalf("unexpected provider call: %+v", provider.lastIntent)
	}

	// Provider confirms payment asynchronously; redelivery is harmless.
	webhookBody := fmt.Sprintf(`{"type":"payment_intent.succeeded","orderId":%q}`, order.ID)
	for i := 0; i < 2; i++ {
		resp = doJSON(t, app, fiber.MethodPost, "/webhook", webhookBody, func(r *http.Request) {
			r.Header.Set("Stripe-Signature", "valid")
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("webhook delivery %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}

	// The webhook is the only path that confirms payment.
	resp = doJSON(t, app, fiber.MethodGet, "/orders/"+order.ID, "", withToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &order)
	if order.PaymentStatus != orders.PaymentStatusReceived {
		t.Fatalf("expected received after webhook, got %s", order.PaymentStatus)
	}
}

func TestWebhookBadSignatureThroughRouter(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/webhook", `{"type":"payment_intent.succeeded","orderId":"o1"}`, func(r *http.Request) {
		r.Header.Set("Stripe-Signature", "forged")
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/users/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionCookieAuthenticatesProtectedRoute(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", `{"email":"bob@example.com","password":"valid-password"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPost, "/auth/login", `{"email":"bob@example.com","password":"valid-password"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected session cookie from login")
	}

	resp = doJSON(t, app, fiber.MethodGet, "/users/me", "", func(r *http.Request) {
		r.AddCookie(sessionCookie)
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected session cookie to authenticate, got %d", resp.StatusCode)
	}
}
