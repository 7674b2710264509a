package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"psidiario/internal/config"
	"psidiario/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server on a fresh in-memory store with the full
// middleware and route setup.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	cfg := &config.Config{
		Port:        "0",
		Env:         "test",
		JWTSecret:   "test_secret",
		StoreDriver: "memory",

		BookingWhatsAppURL: "https://wa.link/wjcw4x",
		BookingEmail:       "clinicaasantiago@gmail.com",
	}

	s := NewServerWithDeps(cfg, store.NewMemoryStore(), nil)

	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s, app
}

// doJSON performs a JSON request against the app and decodes the response
// body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "application/pdf" {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user through the API and returns an
// Authorization header for them.
func registerAndLogin(t *testing.T, app *fiber.App, username string) map[string]string {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"username":        username,
		"fullName":        "Paciente de Teste",
		"birthDate":       "1990-04-12",
		"password":        "x123",
		"confirmPassword": "x123",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "x123",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	token, ok := body["token"].(string)
	require.True(t, ok, "login response must carry a token")
	return map[string]string{"Authorization": "Bearer " + token}
}
