package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/donorbase/internal/config"
)

// CORS lets the browser build of the operator console call the API.
// Preflight requests are answered here and never reach the router.
func CORS(cfg config.CORSConfig) Middleware {
	allowed := make(map[string]struct{})
	anyOrigin := false
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			anyOrigin = true
		default:
			allowed[o] = struct{}{}
		}
	}
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; ok || anyOrigin {
					h.Set("Access-Control-Allow-Origin", origin)
					if cfg.AllowCredentials {
						h.Set("Access-Control-Allow-Credentials", "true")
					}
				}
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
			h.Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
