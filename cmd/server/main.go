// @title         auth-service API
// @version       1.0
// @description   Credential and token lifecycle service for the finmark application: account registration, login, signed bearer tokens and the profile endpoint they protect.
// @BasePath      /
// @schemes       http
// @host          localhost:4001
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
// @description Signed token issued by /register or /login.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	_ "github.com/finmark/auth-service/docs"

	// internal imports
	httpapi "github.com/finmark/auth-service/api/http"
	"github.com/finmark/auth-service/api/http/handlers"
	"github.com/finmark/auth-service/api/http/presenter"
	"github.com/finmark/auth-service/pkg/auth"
	"github.com/finmark/auth-service/pkg/config"
	"github.com/finmark/auth-service/pkg/health"
	healthpg "github.com/finmark/auth-service/pkg/health/checkers"
	"github.com/finmark/auth-service/pkg/logging"
	pgrepo "github.com/finmark/auth-service/pkg/repository/postgres"
	"github.com/finmark/auth-service/pkg/security/jwt"
	"github.com/finmark/auth-service/pkg/security/password"
	storage "github.com/finmark/auth-service/pkg/storage/postgres"
)

const serviceName = "auth-service"

func main() {
	cfg := config.Load()
	log := logging.New(serviceName)

	app := fiber.New(fiber.Config{
		ErrorHandler: newErrorHandler(log, cfg.Development()),
	})
	// Outermost boundary: a panicking handler becomes a logged 500,
	// never a dead process.
	app.Use(recover.New())

	// The store connects in the background with a fixed retry delay;
	// requests made while disconnected fail with a transient error
	// instead of hanging.
	store := storage.Open(context.Background(), cfg.DatabaseURL, log, pgrepo.EnsureSchema)
	defer store.Close()

	// Wire dependencies (Clean Architecture)
	accountRepo := pgrepo.NewAccountRepository(store)
	hasher := password.NewHasher(0, 0)
	codec := jwt.NewCodec(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	credentials := auth.NewCredentialService(accountRepo, hasher, codec)
	authHandler := handlers.NewAuthHandler(credentials, log, cfg.Development())

	// Health service: compose checkers
	readiness := health.NewService(healthpg.NewStoreChecker(store))
	healthHandler := handlers.NewHealthHandler(readiness, serviceName, store.Connected)

	// Token gate for protected routes
	authMW := jwt.NewAuthMiddleware(codec)

	// Register routes
	httpapi.Register(app, authHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	log.Info("HTTP server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// newErrorHandler renders errors that escaped the handlers, including
// recovered panics. Internal detail reaches the client only in
// development mode.
func newErrorHandler(log *slog.Logger, dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An unexpected error occurred"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}
		if code == fiber.StatusInternalServerError {
			log.Error("unhandled request failure", "path", c.Path(), "error", err)
			message = "An unexpected error occurred"
			if dev {
				return presenter.ErrorWithDetails(c, code, message, err.Error())
			}
		}
		return presenter.Error(c, code, message)
	}
}
