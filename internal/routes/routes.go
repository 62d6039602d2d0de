package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mbongo-pay/mbongo_pay/internal/config"
	"github.com/mbongo-pay/mbongo_pay/internal/httpapi"
	"github.com/mbongo-pay/mbongo_pay/internal/identity"
	"github.com/mbongo-pay/mbongo_pay/internal/middleware"
	"github.com/mbongo-pay/mbongo_pay/internal/notification"
	"github.com/mbongo-pay/mbongo_pay/internal/token"
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
	// Outside dev, missing infra is a wiring bug rather than a fallback case.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(identityRepo)
	tokenSvc := token.NewService(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)
	handler := httpapi.NewHandler(identitySvc, tokenSvc, notifier, d.Logger)

	api := app.Group("/api/v1")

	RegisterAuthRoutes(api, handler, AuthDeps{
		Cfg:    d.Cfg,
		Cache:  d.Cache,
		Tokens: tokenSvc,
		Repo:   identityRepo,
		Logger: d.Logger,
	})

	return nil
}
