package cars

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCarHandlerTest(t *testing.T) (*Handlers, *fiber.App) {
	svc, _ := setupCarTest(t)
	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Get("/api/v1/cars", h.GetAllCars)
	app.Get("/api/v1/cars/:id", h.GetCarByID)
	return h, app
}

// TestGetAllCars_PublicShape checks the {cars, totalPages, currentPage}
// contract and that dealer fields never appear.
func TestGetAllCars_PublicShape(t *testing.T) {
	h, app := setupCarHandlerTest(t)
	_, err := h.Service.CreateCar(context.Background(), validInput())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/cars", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Contains(t, raw, "cars")
	assert.Contains(t, raw, "totalPages")
	assert.Contains(t, raw, "currentPage")

	var cars []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["cars"], &cars))
	require.Len(t, cars, 1)
	assert.NotContains(t, cars[0], "dealerName")
	assert.NotContains(t, cars[0], "dealerPhone")
	assert.Equal(t, "available", cars[0]["status"])
}

func TestGetAllCars_InvalidPage(t *testing.T) {
	_, app := setupCarHandlerTest(t)

	for _, q := range []string{"page=0", "page=abc", "maxPrice=-5", "maxPrice=cheap"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/cars?"+q, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestGetCarByID_PublicDetail(t *testing.T) {
	h, app := setupCarHandlerTest(t)
	car, err := h.Service.CreateCar(context.Background(), validInput())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/cars/"+car.CarID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, car.Title, raw["title"])
	assert.NotContains(t, raw, "dealerName")
}

func TestGetCarByID_NotFoundResponses(t *testing.T) {
	_, app := setupCarHandlerTest(t)

	// Unknown id and malformed id both read as 404
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/cars/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, id)
	}
}
