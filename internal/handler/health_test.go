package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBoard struct {
	world     string
	available bool
}

func (b stubBoard) World() string   { return b.world }
func (b stubBoard) Available() bool { return b.available }

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	HandleHealthz()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleReadyzUnavailable(t *testing.T) {
	boards := []BoardAvailability{
		stubBoard{world: "faerie", available: true},
		stubBoard{world: "siren", available: false},
	}

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	HandleReadyz(boards)(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp.Status)
	assert.Contains(t, resp.Message, "siren")
}

func TestHandleReadyzReady(t *testing.T) {
	boards := []BoardAvailability{
		stubBoard{world: "faerie", available: true},
		stubBoard{world: "siren", available: true},
	}

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	HandleReadyz(boards)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
