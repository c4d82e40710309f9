package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/api/http/handlers"
	"github.com/E72-BI/cartao-santa-casa/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Members           *handlers.MembersHandler
	Assets            *handlers.AssetsHandler
	Benefits          *handlers.BenefitsHandler
	Chat              *handlers.ChatHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/email", cfg.Auth.SubmitEmail)
	authGroup.Post("/validate", cfg.Auth.SimulateValidation)
	authGroup.Post("/password", cfg.Auth.CreatePassword)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	protected := app.Group("", cfg.SessionMiddleware.Handle, auth.RequireSession())
	protected.Get("/benefits", cfg.Benefits.List)
	protected.Post("/chat", cfg.Chat.Send)

	admin := app.Group("", cfg.SessionMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/members", cfg.Members.List)
	admin.Put("/members/:id", cfg.Members.Update)
	admin.Delete("/members/:id", cfg.Members.Delete)
	admin.Post("/members/import", cfg.Members.Import)
	admin.Get("/members/export", cfg.Members.Export)
	admin.Get("/assets", cfg.Assets.List)
	admin.Post("/assets", cfg.Assets.Upload)
	admin.Delete("/assets/:index", cfg.Assets.Delete)
}
