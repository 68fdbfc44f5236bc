package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context user is not admin.
// Use in REST handlers; AdminOnly is the HTTP middleware form.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

// AdminOnly rejects requests from non-admin users with 403.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := RequireAdmin(r.Context()); err != nil {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
