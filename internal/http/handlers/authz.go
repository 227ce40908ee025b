package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"emporium/internal/domain"
	applog "emporium/internal/log"
	"emporium/internal/services"
)

// Protect authenticates the bearer token and attaches the resolved user to
// the request context.
func Protect(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized")
		}
		u, err := auth.Verify(token)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireRole gates a route on the caller's role. It must run after Protect.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil || u.Role != role {
			applog.Security(c, "access.denied", map[string]any{"required": role})
			return fiber.NewError(fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil on unprotected routes.
func CurrentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
