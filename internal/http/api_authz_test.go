package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := request(t, app, fiber.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	// category listing is public
	resp, env = request(t, app, fiber.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestAdminRoutesRejectRegularUsers(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice@emporium.test")
	admin := login(t, app, "admin@emporium.test")

	resp, env := request(t, app, fiber.MethodGet, "/api/v1/orders-admin", alice, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "access denied", env.Error)

	resp, _ = request(t, app, fiber.MethodPost, "/api/v1/add-category", alice, fiber.Map{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = request(t, app, fiber.MethodGet, "/api/v1/orders-admin", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := request(t, app, fiber.MethodPost, "/api/v1/login", "", fiber.Map{
		"email":    "alice@emporium.test",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid email or password", env.Error)
}

func TestGarbageTokenRejected(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := request(t, app, fiber.MethodGet, "/api/v1/products", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserListingNeverExposesPasswords(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, "admin@emporium.test")

	resp, env := request(t, app, fiber.MethodGet, "/api/v1/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := strings.ToLower(string(env.Data))
	assert.Contains(t, body, "alice@emporium.test")
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hash")
	assert.NotContains(t, body, "$2") // bcrypt prefix

	// count and single-user fetch are admin-only too
	resp, _ = request(t, app, fiber.MethodGet, "/api/v1/users-count", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	alice := login(t, app, "alice@emporium.test")
	resp, _ = request(t, app, fiber.MethodGet, "/api/v1/users/u-bob", alice, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
