package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finmark/auth-service/api/http/presenter"
)

// HeaderName is the custom token header the client sends. The service
// predates the Bearer scheme convention and clients still rely on it.
const HeaderName = "x-auth-token"

// Locals keys populated by the middleware on success.
const (
	LocalsSubjectID = "subjectID"
	LocalsRole      = "role"
)

// NewAuthMiddleware returns a Fiber middleware that verifies the token
// from the x-auth-token header. On success the subject id and role are
// stored in the request locals; the account store is never consulted.
func NewAuthMiddleware(codec *Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(c.Get(HeaderName))
		if tokenStr == "" {
			return presenter.Error(c, http.StatusUnauthorized, "No token, authorization denied")
		}
		identity, err := codec.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				return presenter.Error(c, http.StatusUnauthorized, "Token has expired")
			}
			return presenter.Error(c, http.StatusUnauthorized, "Token is not valid")
		}
		c.Locals(LocalsSubjectID, identity.SubjectID)
		c.Locals(LocalsRole, string(identity.Role))
		return c.Next()
	}
}
