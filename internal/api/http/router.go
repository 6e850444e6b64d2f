package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coastwatch/hazard-service/internal/api/http/handlers"
	"github.com/coastwatch/hazard-service/internal/auth"
	"github.com/coastwatch/hazard-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	Advisories     *handlers.AdvisoriesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateProfile)
	authGroup.Put("/user/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOfficial), cfg.Auth.UpdateRole)

	api.Get("/user/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	reports := api.Group("/hazard-reports")
	reports.Get("/", cfg.Reports.List)
	reports.Post("/", cfg.AuthMiddleware.Handle, cfg.Reports.Create)
	reports.Post("/:id/like", cfg.AuthMiddleware.Handle, cfg.Reports.Like)
	reports.Put("/:id/status", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOfficial), cfg.Reports.UpdateStatus)

	advisories := api.Group("/advisories")
	advisories.Get("/", cfg.Advisories.List)
	advisories.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOfficial), cfg.Advisories.Issue)
	advisories.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOfficial), cfg.Advisories.Update)

	summaries := api.Group("/analyst-reports", cfg.AuthMiddleware.Handle)
	summaries.Get("/", auth.RequireRole(domain.RoleAnalyst, domain.RoleOfficial), cfg.Advisories.ListSummaries)
	summaries.Post("/", auth.RequireRole(domain.RoleAnalyst), cfg.Advisories.CreateSummary)
}
