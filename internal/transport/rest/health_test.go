package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

var errUnreachable = errors.New("dial tcp: connection refused")

func fetchHealth(t *testing.T, serve http.HandlerFunc, path string) (int, HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	serve(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Timestamp.IsZero())
	return rec.Code, resp
}

func TestHealthHandler_Live(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(stubPinger{err: errUnreachable}, "1.4.0")

	code, resp := fetchHealth(t, h.Live, "/live")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		db       error
		storage  error
		wantCode int
		want     string
	}{
		{"database up", nil, nil, http.StatusOK, "ok"},
		{"database down", errUnreachable, nil, http.StatusServiceUnavailable, "down"},
		{"storage down is still ready", nil, errUnreachable, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(stubPinger{err: tt.db}, "1.4.0").
				WithComponent("storage", stubPinger{err: tt.storage})

			code, resp := fetchHealth(t, h.Ready, "/ready")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.want, resp.Status)
			assert.Empty(t, resp.Components)
		})
	}
}

func TestHealthHandler_Health(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		db          error
		storage     error
		wantCode    int
		wantStatus  string
		wantDB      string
		wantStorage string
	}{
		{"all up", nil, nil, http.StatusOK, "ok", "ok", "ok"},
		{"database down", errUnreachable, nil, http.StatusServiceUnavailable, "down", "down", "ok"},
		{"storage down", nil, errUnreachable, http.StatusServiceUnavailable, "down", "ok", "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(stubPinger{err: tt.db}, "1.4.0").
				WithComponent("storage", stubPinger{err: tt.storage})

			code, resp := fetchHealth(t, h.Health, "/health")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "1.4.0", resp.Version)
			require.Len(t, resp.Components, 2)
			assert.Equal(t, tt.wantDB, resp.Components["database"].Status)
			assert.Equal(t, tt.wantStorage, resp.Components["storage"].Status)

			for name, c := range resp.Components {
				if c.Status == "ok" {
					assert.NotEmpty(t, c.Latency, name)
				} else {
					assert.Empty(t, c.Latency, name)
				}
			}
		})
	}
}
