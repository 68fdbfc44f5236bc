package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// lastRecord decodes the single JSON record written by the logger.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())
	return rec
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"donor list", "/donors", http.StatusOK, "INFO"},
		{"validation failure", "/donors", http.StatusBadRequest, "WARN"},
		{"missing donor", "/donors/9", http.StatusNotFound, "WARN"},
		{"storage outage", "/donors/9/documents", http.StatusBadGateway, "ERROR"},
		{"readiness check", "/ready", http.StatusOK, "DEBUG"},
		{"failing readiness still loud", "/ready", http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			rec := lastRecord(t, &buf)
			assert.Equal(t, "http.request", rec["msg"])
			assert.Equal(t, tt.wantLevel, rec["level"])
			assert.Equal(t, tt.path, rec["path"])
			assert.EqualValues(t, tt.status, rec["status"])
		})
	}
}

func TestLogger_RecordsBytesAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := Logger(slog.New(slog.NewJSONHandler(&buf, nil)))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/donors", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "donorctl-list-3"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	rec := lastRecord(t, &buf)
	assert.EqualValues(t, 12, rec["bytes"])
	assert.EqualValues(t, 200, rec["status"])
	assert.Equal(t, "donorctl-list-3", rec["request_id"])
	assert.NotContains(t, rec, "user_id")
}

func TestLogger_IncludesOperatorFromAuth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	operator := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(context.Context, string) (uuid.UUID, string, error) {
			return operator, "user", nil
		},
	}

	h := Chain(Logger(slog.New(slog.NewJSONHandler(&buf, nil))), Auth(validator))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
	)

	req := httptest.NewRequest(http.MethodDelete, "/donors/5", nil)
	req.Header.Set("Authorization", "Bearer operator-token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, operator.String(), lastRecord(t, &buf)["user_id"])
}
