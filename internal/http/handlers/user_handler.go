package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"emporium/internal/repos"
	"emporium/internal/validate"
)

type UserHandler struct {
	Users *repos.UserRepo
}

// GET /users (admin; password hashes never serialize)
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load users")
	}
	return ok(c, users)
}

// GET /users/:userId (admin)
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("userId"))
	if !okID {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}
	u, err := h.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load user")
	}
	return ok(c, u)
}

// GET /users-count (admin)
func (h *UserHandler) Count(c *fiber.Ctx) error {
	n, err := h.Users.Count()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not count users")
	}
	return ok(c, n)
}
