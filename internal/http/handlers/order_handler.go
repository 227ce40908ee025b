package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /add-order (authenticated; owner = caller)
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	u := CurrentUser(c)
	o, err := h.Orders.Place(u.ID, in)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":     o.ID,
		"user_id":      u.ID,
		"server_total": o.TotalPrice,
		"client_total": in.TotalPrice,
	})
	return created(c, o)
}

// GET /orders (authenticated; caller's own orders)
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	orders, err := h.Orders.Mine(CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, orders)
}

// GET /orders-admin (admin; all orders)
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.Orders.All()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, orders)
}

// GET /orders/:orderId (authenticated, owner-checked)
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.Orders.GetOwned(c.Params("orderId"), CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, o)
}

// GET /total-sales (admin)
func (h *OrderHandler) TotalSales(c *fiber.Ctx) error {
	total, err := h.Orders.TotalSales()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, fiber.Map{"totalSales": total})
}

// GET /orders-count (admin)
func (h *OrderHandler) Count(c *fiber.Ctx) error {
	n, err := h.Orders.Count()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, n)
}

type statusBody struct {
	Status string `json:"status"`
}

// PUT /update-order/:orderId (owner) — status is the only mutable field.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, false)
}

// PUT /admin/update-order/:orderId (admin; any owner's order)
func (h *OrderHandler) UpdateStatusAdmin(c *fiber.Ctx) error {
	return h.updateStatus(c, true)
}

func (h *OrderHandler) updateStatus(c *fiber.Ctx, asAdmin bool) error {
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	o, err := h.Orders.UpdateStatus(c.Params("orderId"), CurrentUser(c).ID, body.Status, asAdmin)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "order.status.update", map[string]any{"order_id": o.ID, "status": o.Status})
	return ok(c, o)
}

// DELETE /delete-order/:orderId (owner) — cascades to the order's items.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("orderId")
	if err := h.Orders.DeleteOwned(id, CurrentUser(c).ID); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return message(c, "order deleted successfully")
}
