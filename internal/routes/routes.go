package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shoply/shoply/internal/auth"
	"github.com/shoply/shoply/internal/config"
	"github.com/shoply/shoply/internal/identity"
	"github.com/shoply/shoply/internal/middleware"
	"github.com/shoply/shoply/internal/notification"
	"github.com/shoply/shoply/internal/orders"
	"github.com/shoply/shoply/internal/payments"
	"github.com/shoply/shoply/internal/session"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger

	// Provider overrides the Stripe connector, used by tests.
	Provider payments.Provider
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Repositories
	var userRepo identity.Repository
	var orderRepo orders.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		orderRepo = orders.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
		orderRepo = orders.NewMemoryRepository()
	}

	// Sessions
	sessionCfg := fsession.Config{
		Expiration:     d.Cfg.SessionTTL,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if d.Cache != nil {
		sessionCfg.Storage = session.NewStorage(d.Cache, []byte(d.Cfg.SessionKey))
	}
	sessions := fsession.New(sessionCfg)

	// Services and handlers
	ids := identity.NewService(userRepo)
	issuer := auth.NewIssuer([]byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL)
	authHandler := auth.NewHandler(ids, auth.NewPasswordAuthenticator(ids), issuer, sessions)

	orderSvc := orders.NewService(orderRepo)
	orderHandler := orders.NewHandler(orderSvc)

	provider := d.Provider
	if provider == nil {
		provider = payments.NewStripeProvider(d.Cfg.StripeSecretKey, d.Cfg.WebhookSecret)
	}
	notifier := notification.NewLoggerNotifier(d.Logger)
	paymentSvc := payments.NewService(provider, orderSvc, notifier, d.Logger)
	paymentHandler := payments.NewHandler(paymentSvc)

	// Health
	RegisterHealthRoutes(app, d)

	// The webhook is verified by provider signature, never by the gate, and
	// must see the raw request body.
	app.Post("/webhook", paymentHandler.Webhook)

	// Public auth routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(app, authHandler, rateLimiter)

	// Protected routes
	gate := middleware.AuthGate(auth.NewTokenAuthenticator(issuer, userRepo), sessions)
	protected := app.Group("", gate)

	RegisterUserRoutes(protected)
	RegisterOrderRoutes(protected, orderHandler)
	RegisterPaymentRoutes(protected, paymentHandler, d)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
