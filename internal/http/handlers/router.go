package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"emporium/internal/domain"
)

// Route declares one endpoint: method, path and the ordered middleware chain
// that runs before its handler. The whole table is built once at startup.
type Route struct {
	Method     string
	Path       string
	Middleware []fiber.Handler
	Handler    fiber.Handler
}

// Routes returns the full API surface. Middleware chains are declarative:
// nothing downstream re-checks roles.
func (d *Deps) Routes() []Route {
	authed := []fiber.Handler{Protect(d.Auth)}
	admin := []fiber.Handler{Protect(d.Auth), RequireRole(domain.RoleAdmin)}
	loginThrottle := []fiber.Handler{limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
	})}

	return []Route{
		// Auth
		{fiber.MethodPost, "/register", nil, d.AuthHandler.Register},
		{fiber.MethodPost, "/login", loginThrottle, d.AuthHandler.Login},

		// Categories
		{fiber.MethodPost, "/add-category", admin, d.CategoryHandler.Add},
		{fiber.MethodGet, "/categories", nil, d.CategoryHandler.List},
		{fiber.MethodGet, "/categories/:categoryId", nil, d.CategoryHandler.Get},
		{fiber.MethodPut, "/update-category/:categoryId", admin, d.CategoryHandler.Update},
		{fiber.MethodDelete, "/delete-category/:categoryId", admin, d.CategoryHandler.Delete},

		// Products
		{fiber.MethodPost, "/add-product", admin, d.ProductHandler.Add},
		{fiber.MethodGet, "/products", authed, d.ProductHandler.List},
		{fiber.MethodGet, "/products-category", authed, d.ProductHandler.ByCategories},
		{fiber.MethodGet, "/products-count", authed, d.ProductHandler.Count},
		{fiber.MethodGet, "/products-featured", authed, d.ProductHandler.Featured},
		{fiber.MethodGet, "/products/:productId", authed, d.ProductHandler.Get},
		{fiber.MethodPut, "/update-product/:productId", admin, d.ProductHandler.Update},
		{fiber.MethodPut, "/update-product-gallery-images/:productId", admin, d.ProductHandler.UpdateGallery},
		{fiber.MethodDelete, "/delete-product/:productId", admin, d.ProductHandler.Delete},

		// Orders
		{fiber.MethodPost, "/add-order", authed, d.OrderHandler.Place},
		{fiber.MethodGet, "/orders", authed, d.OrderHandler.Mine},
		{fiber.MethodGet, "/orders-admin", admin, d.OrderHandler.ListAll},
		{fiber.MethodGet, "/orders-count", admin, d.OrderHandler.Count},
		{fiber.MethodGet, "/total-sales", admin, d.OrderHandler.TotalSales},
		{fiber.MethodGet, "/orders/:orderId", authed, d.OrderHandler.Get},
		{fiber.MethodPut, "/update-order/:orderId", authed, d.OrderHandler.UpdateStatus},
		{fiber.MethodPut, "/admin/update-order/:orderId", admin, d.OrderHandler.UpdateStatusAdmin},
		{fiber.MethodDelete, "/delete-order/:orderId", authed, d.OrderHandler.Delete},

		// Users
		{fiber.MethodGet, "/users", admin, d.UserHandler.List},
		{fiber.MethodGet, "/users-count", admin, d.UserHandler.Count},
		{fiber.MethodGet, "/users/:userId", admin, d.UserHandler.Get},
	}
}

// Register mounts the route table under prefix.
func Register(app *fiber.App, prefix string, routes []Route) {
	group := app.Group(prefix)
	for _, r := range routes {
		chain := make([]fiber.Handler, 0, len(r.Middleware)+1)
		chain = append(chain, r.Middleware...)
		chain = append(chain, r.Handler)
		group.Add(r.Method, r.Path, chain...)
	}
}
