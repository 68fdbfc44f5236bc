package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// Recovery turns a handler panic into a logged 500 with the generic error
// body. http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				logger.ErrorContext(r.Context(), "handler panic",
					slog.Any("panic", v),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("route", r.Method+" "+r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
