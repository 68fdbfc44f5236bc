package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// Auth resolves a bearer token into user id and role on the request context.
// Requests without a token pass through anonymously; RequireAuth rejects them
// where a user is mandatory.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			userID, role, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			ctx = ctxutil.WithUserRole(ctx, role)
			if sw, ok := w.(*statusWriter); ok {
				sw.userID = userID
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
