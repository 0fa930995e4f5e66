package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/handlers"
)

// MockHealthChecker reports a configurable health result
type MockHealthChecker struct {
	HealthCheckFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFunc != nil {
		return m.HealthCheckFunc(ctx)
	}
	return nil
}

func TestSystemHandler_Health(t *testing.T) {
	build := handlers.BuildInfo{Version: "1.2.3", Environment: "testing"}

	t.Run("Healthy", func(t *testing.T) {
		h := handlers.NewSystemHandler(&MockHealthChecker{}, build)
		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"data":{"status":"healthy","version":"1.2.3"}}`, rr.Body.String())
	})

	t.Run("Unhealthy", func(t *testing.T) {
		h := handlers.NewSystemHandler(&MockHealthChecker{
			HealthCheckFunc: func(ctx context.Context) error { return errors.New("connection refused") },
		}, build)
		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, constants.CodeServiceUnavailable, errInfo["code"])
		assert.Equal(t, constants.MsgServiceUnhealthy, errInfo["message"])
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})
}

func TestSystemHandler_Version(t *testing.T) {
	build := handlers.BuildInfo{Version: "1.2.3", Commit: "abc123", Environment: "production"}
	h := handlers.NewSystemHandler(&MockHealthChecker{}, build)

	rr := httptest.NewRecorder()
	h.Version(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"version":"1.2.3","commit":"abc123","environment":"production"}}`, rr.Body.String())
}
