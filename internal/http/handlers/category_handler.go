package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// POST /add-category (admin)
func (h *CategoryHandler) Add(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	cat, err := h.Catalog.AddCategory(in)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	applog.Audit(c, "category.add", map[string]any{"category_id": cat.ID})
	return created(c, cat)
}

// GET /categories (public)
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, cats)
}

// GET /categories/:categoryId (public)
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.Catalog.Category(c.Params("categoryId"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, cat)
}

// PUT /update-category/:categoryId (admin)
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	cat, err := h.Catalog.UpdateCategory(c.Params("categoryId"), in)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": cat.ID})
	return ok(c, cat)
}

// DELETE /delete-category/:categoryId (admin)
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("categoryId")
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return message(c, "category deleted successfully")
}
