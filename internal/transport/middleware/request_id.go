package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 64

// RequestID tags each request with a correlation id. A caller-supplied id is
// kept when it is short printable ASCII so donorctl logs line up with ours;
// anything else is replaced with a fresh UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !usableRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}

func usableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
