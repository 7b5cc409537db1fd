package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finmark/auth-service/pkg/health"
)

type readinessStub struct{ err error }

func (s readinessStub) Ready(context.Context) error { return s.err }

func newHealthApp(svc health.ReadinessUseCase, connected bool) *fiber.App {
	h := NewHealthHandler(svc, "auth-service", func() bool { return connected })
	app := fiber.New()
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthReportsStoreState(t *testing.T) {
	status, body := getJSON(t, newHealthApp(readinessStub{}, true), "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "auth-service", body["service"])
	assert.Equal(t, true, body["storeConnected"])

	// Liveness stays 200 while the store is down; only the flag flips.
	status, body = getJSON(t, newHealthApp(readinessStub{}, false), "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["storeConnected"])
}

func TestReady(t *testing.T) {
	status, body := getJSON(t, newHealthApp(readinessStub{}, true), "/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, body = getJSON(t, newHealthApp(readinessStub{err: errors.New("store unavailable")}, false), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "not_ready", body["status"])
}
