package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/api/http/handlers"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/observability"
	"github.com/alkmaar-rp/supportbot/internal/persistence"
	"github.com/alkmaar-rp/supportbot/internal/repository"
	"github.com/alkmaar-rp/supportbot/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	ledger := repository.NewClockLedger(filepath.Join(t.TempDir(), "clock.json"))
	clock := service.NewClockService(ledger, dispatcher, logger)
	signoffs := service.NewSignoffService(dispatcher, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("supportbot", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Clock:   handlers.NewClockHandler(clock),
		Signoff: handlers.NewSignoffHandler(signoffs),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "alive", body["status"])
}

func TestClockFlow(t *testing.T) {
	app := newTestApp(t)

	resp, _ := postJSON(t, app, "/clockin", map[string]string{"naam": "Piet"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// double clock-in conflicts
	resp, body := postJSON(t, app, "/clockin", map[string]string{"naam": "Piet"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", errBody["code"])

	resp, body = postJSON(t, app, "/clockout", map[string]string{"naam": "Piet"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Piet", data["naam"])
	assert.NotEmpty(t, data["duur"])
}

func TestClockInValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := postJSON(t, app, "/clockin", map[string]string{"naam": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestLeaderboard(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "/clockin", map[string]string{"naam": "Piet"})
	postJSON(t, app, "/clockout", map[string]string{"naam": "Piet"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Piet", entries[0]["name"])
	assert.Contains(t, entries[0], "totalTime")
}

func TestSignoffEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, _ := postJSON(t, app, "/signoff", map[string]string{
		"naam":       "Piet",
		"startdatum": "2025-06-01",
		"eindatum":   "2025-06-08",
		"reden":      "Vakantie",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, app, "/signoff", map[string]string{
		"naam":       "Piet",
		"startdatum": "volgende week",
		"eindatum":   "2025-06-08",
		"reden":      "Vakantie",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestStaffPagesServed(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/clock"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "Alkmaar Roleplay")
	}
}
