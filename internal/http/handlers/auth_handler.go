package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	u, err := h.Auth.Register(body.Name, body.Email, body.Password)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return created(c, u)
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	token, u, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email})
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return fail(c, err, fiber.StatusBadRequest)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return ok(c, fiber.Map{"token": token, "user": u})
}
