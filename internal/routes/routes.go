package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/paper-swap/paper_swap/internal/claim"
	"github.com/paper-swap/paper_swap/internal/config"
	"github.com/paper-swap/paper_swap/internal/middleware"
	"github.com/paper-swap/paper_swap/internal/notification"
	"github.com/paper-swap/paper_swap/internal/oracle"
	"github.com/paper-swap/paper_swap/internal/registry"
	"github.com/paper-swap/paper_swap/internal/swap"
	"github.com/paper-swap/paper_swap/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside of dev the in-memory fallbacks are not acceptable backends.
	if !d.Cfg.IsDev() {
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
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Backends: postgres/redis in real deployments, in-memory in dev.
	var walletStore wallet.Store
	if d.DB != nil {
		walletStore = wallet.NewPostgresStore(d.DB)
	} else {
		walletStore = wallet.NewMemoryStore()
	}

	var claimRegistry registry.Registry
	var quoteStore oracle.Store
	if d.Cache != nil {
		claimRegistry = registry.NewRedis(d.Cache)
		quoteStore = oracle.NewRedisStore(d.Cache, d.Cfg.QuoteTTL)
	} else {
		claimRegistry = registry.NewMemory()
		quoteStore = oracle.NewMemoryStore()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	claimSvc := claim.NewService(claimRegistry, walletStore, notifier)
	swapSvc := swap.NewService(walletStore, quoteStore, d.Cfg.QuoteSource, notifier)

	claimHandler := claim.NewHandler(claimSvc)
	swapHandler := swap.NewHandler(swapSvc)
	walletHandler := wallet.NewHandler(walletStore)
	oracleHandler := oracle.NewHandler(quoteStore, d.Cfg.QuoteSource)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	api.Post("/claims", claimHandler.Claim)
	api.Get("/wallets/owner/:identity", walletHandler.GetByOwner)
	api.Get("/wallets/:walletId", walletHandler.Get)
	api.Post("/swaps", swapHandler.Execute)
	api.Post("/quotes", oracleHandler.Publish)

	return nil
}
