package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
)

// Every response body is the same envelope: {success, data?, message?} on
// success, {success:false, error} on failure.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

// fail maps service errors onto HTTP statuses. missing is the status used for
// a NotFoundError: 400 when a referent was missing during a write, 404 when
// the request's target itself is absent.
func fail(c *fiber.Ctx, err error, missing int) error {
	var ve *services.ValidationError
	var de *services.DuplicateError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &ve) || errors.As(err, &de):
		applog.Security(c, "validation.fail", map[string]any{"reason": err.Error()})
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &nf):
		return fiber.NewError(missing, err.Error())
	default:
		applog.Error(c, "server.error", err, nil)
		return fiber.NewError(fiber.StatusInternalServerError, "something went wrong")
	}
}

// ErrorHandler is the app-wide fiber error handler; it renders the error
// envelope and never leaks internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "something went wrong"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "error": msg})
}
