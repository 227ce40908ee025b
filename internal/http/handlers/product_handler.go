package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func openUpload(fh *multipart.FileHeader) (*services.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.Upload{Filename: fh.Filename, Reader: f}, func() { _ = f.Close() }, nil
}

// POST /add-product (admin, multipart with optional primary "image")
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	var upload *services.Upload
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		up, done, err := openUpload(fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded image")
		}
		defer done()
		upload = up
	}

	p, err := h.Catalog.AddProduct(in, upload)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	applog.Audit(c, "product.add", map[string]any{"product_id": p.ID})
	return created(c, p)
}

// GET /products (authenticated)
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.Products()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, products)
}

// GET /products/:productId (authenticated)
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.Catalog.Product(c.Params("productId"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, p)
}

// GET /products-category?categories=id1,id2 (authenticated)
func (h *ProductHandler) ByCategories(c *fiber.Ctx) error {
	products, err := h.Catalog.ProductsByCategories(c.Query("categories"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, products)
}

// GET /products-count (authenticated)
func (h *ProductHandler) Count(c *fiber.Ctx) error {
	n, err := h.Catalog.ProductCount()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, n)
}

// GET /products-featured?count=N (authenticated)
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	products, err := h.Catalog.FeaturedProducts(c.QueryInt("count"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return ok(c, products)
}

// PUT /update-product/:productId (admin)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	p, err := h.Catalog.UpdateProduct(c.Params("productId"), in)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": p.ID})
	return ok(c, p)
}

// PUT /update-product-gallery-images/:productId (admin, up to 10 "images")
func (h *ProductHandler) UpdateGallery(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed multipart body")
	}

	var uploads []services.Upload
	for _, fh := range form.File["images"] {
		up, done, err := openUpload(fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded image")
		}
		defer done()
		uploads = append(uploads, *up)
	}

	p, err := h.Catalog.UpdateProductGallery(c.Params("productId"), uploads)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "product.gallery.update", map[string]any{"product_id": p.ID, "images": len(uploads)})
	return ok(c, p)
}

// DELETE /delete-product/:productId (admin)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("productId")
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return message(c, "product deleted successfully")
}
