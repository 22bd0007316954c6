package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jwt-issuer/internal/api/http/handlers"
	"github.com/spec-kit/jwt-issuer/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Issuer  *handlers.IssuerHandler
	Metrics *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Info)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/metrics", cfg.Metrics.Show)

	app.Post(config.IssuerResource, cfg.Issuer.Issue)
}
