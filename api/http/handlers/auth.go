package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/finmark/auth-service/api/http/presenter"
	"github.com/finmark/auth-service/pkg/auth"
	"github.com/finmark/auth-service/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.UseCase
	log     *slog.Logger
	dev     bool
}

func NewAuthHandler(useCase auth.UseCase, log *slog.Logger, dev bool) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log, dev: dev}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles account registration.
// @Summary Register account
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		var vErr *auth.ValidationError
		switch {
		case errors.As(err, &vErr):
			return presenter.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", vErr.Fields)
		case errors.Is(err, auth.ErrAccountExists):
			return presenter.ErrorWithDetails(c, http.StatusConflict, "User already exists",
				fiber.Map{"email": "Email is already registered"})
		case errors.Is(err, auth.ErrStoreUnavailable):
			return h.storeUnavailable(c)
		default:
			return h.serverError(c, "Server error during registration", err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    result.Account.Public(),
	})
}

// Login handles account authentication.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var vErr *auth.ValidationError
		switch {
		case errors.As(err, &vErr):
			return presenter.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", vErr.Fields)
		case errors.Is(err, auth.ErrInvalidCredentials):
			// Deliberately generic: never reveals whether the email exists.
			return presenter.Error(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, auth.ErrStoreUnavailable):
			return h.storeUnavailable(c)
		default:
			return h.serverError(c, "Server error during login", err)
		}
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.Account.Public(),
	})
}

// Profile returns the authenticated account, password hash excluded.
// @Summary Current account profile
// @Tags    auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	subjectID, _ := c.Locals(jwt.LocalsSubjectID).(string)

	account, err := h.useCase.Profile(c.Context(), subjectID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotFound):
			// Token was valid but the record is gone.
			return presenter.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrStoreUnavailable):
			return h.storeUnavailable(c)
		default:
			return h.serverError(c, "Server error retrieving profile", err)
		}
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"user":    account.Public(),
	})
}

func (h *AuthHandler) storeUnavailable(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusInternalServerError, "Service temporarily unavailable")
}

func (h *AuthHandler) serverError(c *fiber.Ctx, message string, err error) error {
	h.log.Error(message, "path", c.Path(), "error", err)
	if h.dev {
		return presenter.ErrorWithDetails(c, http.StatusInternalServerError, message, err.Error())
	}
	return presenter.Error(c, http.StatusInternalServerError, message)
}
