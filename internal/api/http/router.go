package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexus-care/complaint-service/internal/api/http/handlers"
	"github.com/nexus-care/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Complaints *handlers.ComplaintsHandler
	Sessions   *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Logout stays outside the session
// middleware so it succeeds without an active session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)
	app.Post("/reset-password", cfg.Auth.ResetPassword)

	protected := app.Group("", cfg.Sessions.Handle)
	protected.Get("/session", cfg.Auth.Session)
	protected.Get("/complaints", cfg.Complaints.List)
	protected.Post("/complaints", cfg.Complaints.Create)
	protected.Put("/complaints/:id/status", cfg.Complaints.UpdateStatus)
	protected.Delete("/complaints/:id", cfg.Complaints.Delete)
}
