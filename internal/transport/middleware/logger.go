package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// healthPaths are polled by orchestrators; logging them at info drowns the
// donor traffic.
var healthPaths = map[string]bool{
	"/live":    true,
	"/ready":   true,
	"/health":  true,
	"/metrics": true,
}

// Logger writes one "http.request" record per request. 5xx responses log at
// error, 4xx at warn, health checks at debug.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int64("bytes", sw.written),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if sw.userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", sw.userID.String()))
			}
			logger.LogAttrs(r.Context(), requestLevel(r.URL.Path, sw.status), "http.request", attrs...)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case healthPaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// statusWriter records what the handler sent. Auth fills userID because it
// runs inside Logger and the caller is only known there.
type statusWriter struct {
	http.ResponseWriter
	status      int
	written     int64
	wroteHeader bool
	userID      uuid.UUID
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
