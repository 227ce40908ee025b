package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emporium/internal/domain"
	"emporium/internal/repos"
)

func TestAddProductMultipartWithImage(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, "admin@emporium.test")
	alice := login(t, app, "alice@emporium.test")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":         "Turntable",
		"description":  "Belt-drive turntable",
		"brand":        "Technics",
		"price":        "249.99",
		"category":     "cat-audio",
		"countInStock": "4",
		"isFeatured":   "true",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile("image", "main.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/add-product", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var p domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Turntable", p.Name)
	assert.Equal(t, 249.99, p.Price)
	assert.NotEmpty(t, p.Image.URL)
	assert.NotEmpty(t, p.Image.AssetID)

	// authenticated users can read it back with the category expanded
	resp2, env2 := request(t, app, fiber.MethodGet, "/api/v1/products/"+p.ID, alice, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	var got domain.Product
	require.NoError(t, json.Unmarshal(env2.Data, &got))
	assert.Equal(t, "Audio", got.CategoryName)
}

func TestFeaturedProductsDefaultCount(t *testing.T) {
	app, db := newTestApp(t)
	alice := login(t, app, "alice@emporium.test")

	prods := repos.NewProductRepo(db)
	// the seed carries two featured products; push past the default cap
	for i := 0; i < 5; i++ {
		require.NoError(t, prods.Create(domain.Product{
			ID: fmt.Sprintf("p-feat-%d", i), Name: fmt.Sprintf("Featured %d", i),
			Description: "d", CategoryID: "cat-consoles", Price: 1,
			CountInStock: 1, IsFeatured: true, ImagesJSON: "[]",
		}))
	}

	resp, env := request(t, app, fiber.MethodGet, "/api/v1/products-featured", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 5)
	for _, p := range got {
		assert.True(t, p.IsFeatured)
	}

	resp, env = request(t, app, fiber.MethodGet, "/api/v1/products-featured?count=2", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
}

func TestProductsFilteredByCategorySet(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice@emporium.test")

	resp, env := request(t, app, fiber.MethodGet, "/api/v1/products-category?categories=cat-consoles,cat-audio", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Contains(t, []string{"cat-consoles", "cat-audio"}, p.CategoryID)
	}

	resp, env = request(t, app, fiber.MethodGet, "/api/v1/products-category?categories=cat-audio,", alice, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid category id list", env.Error)
}

func TestProductFetchErrors(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, "alice@emporium.test")

	// well-formed but absent id
	resp, env := request(t, app, fiber.MethodGet, "/api/v1/products/p-ghost", alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "product not found", env.Error)

	// malformed id
	resp, env = request(t, app, fiber.MethodGet, "/api/v1/products/bad%20id!", alice, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid product id", env.Error)
}

func TestUpdateProductCategoryHandling(t *testing.T) {
	app, db := newTestApp(t)
	admin := login(t, app, "admin@emporium.test")

	require.NoError(t, repos.NewProductRepo(db).Create(domain.Product{
		ID: "p-amp", Name: "Tube Amp", Description: "d", CategoryID: "cat-audio",
		Price: 99, CountInStock: 2, ImagesJSON: "[]",
	}))

	body := fiber.Map{
		"name":         "Tube Amp",
		"description":  "Push-pull tube amplifier",
		"price":        149.5,
		"category":     "cat-ghost",
		"countInStock": 2,
	}

	// a bad category referent is a client error, same as on the add path
	resp, env := request(t, app, fiber.MethodPut, "/api/v1/update-product/p-amp", admin, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "category not found", env.Error)

	// a padded but valid id is stored normalized
	body["category"] = " cat-consoles "
	resp, env = request(t, app, fiber.MethodPut, "/api/v1/update-product/p-amp", admin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "cat-consoles", got.CategoryID)
	assert.Equal(t, "Consoles", got.CategoryName)

	// the missing update target still reads as 404
	body["name"] = "Ghost Amp"
	resp, env = request(t, app, fiber.MethodPut, "/api/v1/update-product/p-ghost", admin, body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "product not found", env.Error)
}
