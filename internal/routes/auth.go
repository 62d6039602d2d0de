package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mbongo-pay/mbongo_pay/internal/config"
	"github.com/mbongo-pay/mbongo_pay/internal/httpapi"
	"github.com/mbongo-pay/mbongo_pay/internal/identity"
	"github.com/mbongo-pay/mbongo_pay/internal/middleware"
	"github.com/mbongo-pay/mbongo_pay/internal/token"
)

// AuthDeps carries what the auth route group needs beyond the handler.
type AuthDeps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Tokens *token.Service
	Repo   identity.Repository
	Logger *slog.Logger
}

// RegisterAuthRoutes wires the authentication endpoints the session clients
// consume: login, per-type signup, whoami and logout.
func RegisterAuthRoutes(r fiber.Router, h *httpapi.Handler, d AuthDeps) {
	group := r.Group("/auth")

	group.Post("/login", middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin), h.Login)

	signupIdem := middleware.Idempotency(d.Cache, d.Cfg.SignupIdemTTL, d.Logger)
	group.Post("/signup-consumer", signupIdem, h.Signup(identity.UserTypeConsumer))
	group.Post("/signup-business", signupIdem, h.Signup(identity.UserTypeBusiness))
	group.Post("/signup-enterprise", signupIdem, h.Signup(identity.UserTypeEnterprise))

	group.Get("/me", middleware.BearerAuth(d.Tokens, d.Repo, true), h.Me)

	// Logout succeeds with or without a usable token; the middleware only
	// identifies the caller when it can.
	group.Post("/logout", middleware.BearerAuth(d.Tokens, d.Repo, false), h.Logout)
}
