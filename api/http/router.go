package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finmark/auth-service/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. Routes live at
// the root: the gateway forwards requests unmodified.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	app.Post("/register", auth.Register)
	app.Post("/login", auth.Login)
	app.Get("/profile", authMW, auth.Profile)

	// Probes for the gateway and monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
}
