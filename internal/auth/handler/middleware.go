package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sameershaik-coder/account-service/internal/auth/domain"
	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
	"github.com/sameershaik-coder/account-service/internal/logging"
)

const currentUserKey = "currentUser"

// CurrentUser returns the authenticated user stashed by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(currentUserKey).(*domain.User)
	return user
}

// RequestLogger seeds the request context with the handler's logger so
// downstream code can pick it up with logging.FromContext.
func (h *AuthHandler) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(logging.IntoContext(c.UserContext(), h.logger))
		return c.Next()
	}
}

// RequireAuth verifies the bearer access token and resolves the caller.
// The guard short-circuits with 401 before the endpoint body runs.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		const bearerPrefix = "Bearer "

		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authz, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Authentication credentials were not provided.",
			})
		}

		claims, err := h.tokenService.VerifyAccess(strings.TrimPrefix(authz, bearerPrefix))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Given token not valid for any token type.",
			})
		}

		user, err := h.userService.GetUser(c.UserContext(), claims.UserID)
		if err != nil {
			return h.renderError(c, err)
		}
		if user == nil || !user.IsActive {
			return h.renderError(c, apperrors.ErrUserNotFound)
		}

		c.Locals(currentUserKey, user)
		c.SetUserContext(logging.IntoContext(c.UserContext(),
			logging.FromContext(c.UserContext()).With("user_id", user.ID)))

		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (h *AuthHandler) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Authentication credentials were not provided.",
			})
		}

		if !user.IsAdmin() {
			return h.renderError(c, apperrors.ErrForbidden)
		}

		return c.Next()
	}
}
