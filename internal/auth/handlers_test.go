package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"caromotors-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthHandlerTest(t *testing.T) (*Handlers, *fiber.App) {
	svc, _ := setupAuthTest(t)
	h := &Handlers{Service: svc, JWTSecret: testSecret}
	app := fiber.New()
	app.Post("/api/v1/auth/register", h.Register)
	app.Post("/api/v1/auth/login", h.Login)
	app.Get("/api/v1/auth/me", middleware.RequireAuth(testSecret), h.Me)
	app.Get("/api/v1/auth/users", middleware.RequireAuth(testSecret), middleware.RequireAdmin(), h.ListUsers)
	return h, app
}

func registerUser(t *testing.T, app *fiber.App) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "sekret1!x",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

// TestRegister_IssuesWorkingToken registers and uses the returned token to
// pass the auth middleware.
func TestRegister_IssuesWorkingToken(t *testing.T) {
	_, app := setupAuthHandlerTest(t)
	token := registerUser(t, app)

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set(middleware.TokenHeader, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "asha@example.com", envelope.Data.Email)
}

func TestMe_RequiresToken(t *testing.T) {
	_, app := setupAuthHandlerTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set(middleware.TokenHeader, "garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestListUsers_AdminOnly(t *testing.T) {
	_, app := setupAuthHandlerTest(t)
	token := registerUser(t, app) // user role

	req := httptest.NewRequest("GET", "/api/v1/auth/users", nil)
	req.Header.Set(middleware.TokenHeader, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, app := setupAuthHandlerTest(t)
	registerUser(t, app)

	body, _ := json.Marshal(map[string]string{
		"email":    "asha@example.com",
		"password": "wrongpass1!",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
