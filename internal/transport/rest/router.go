package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/donorbase/internal/transport/middleware"
)

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Donor    *DonorHandler
	Document *DocumentHandler
	Finding  *FindingHandler
	User     *UserHandler
	Setting  *SettingHandler
}

// RouterConfig holds the cross-cutting pieces wrapped around the routes.
type RouterConfig struct {
	// Middleware wraps the whole router, outermost first. The token resolver
	// (middleware.Auth) belongs here so every route sees the caller.
	Middleware []middleware.Middleware
	// Metrics, when set, instruments matched routes and MetricsHandler is
	// served at MetricsPath.
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter mounts every endpoint. Everything except login, health checks and
// metrics requires a bearer token; user administration requires the admin
// role.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	if cfg.Metrics != nil {
		r.Use(mux.MiddlewareFunc(cfg.Metrics.Instrument()))
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Public.
	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	if cfg.MetricsHandler != nil && cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler).Methods(http.MethodGet)
	}

	// Authenticated.
	priv := r.NewRoute().Subrouter()
	priv.Use(middleware.RequireAuth)

	priv.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	priv.HandleFunc("/donors", h.Donor.List).Methods(http.MethodGet)
	priv.HandleFunc("/donors", h.Donor.Create).Methods(http.MethodPost)
	priv.HandleFunc("/donors/{id}", h.Donor.Get).Methods(http.MethodGet)
	priv.HandleFunc("/donors/{id}", h.Donor.Update).Methods(http.MethodPatch)
	priv.HandleFunc("/donors/{id}", h.Donor.Delete).Methods(http.MethodDelete)

	priv.HandleFunc("/donors/{id}/documents", h.Document.ListByDonor).Methods(http.MethodGet)
	priv.HandleFunc("/donors/{id}/documents", h.Document.Upload).Methods(http.MethodPost)
	priv.HandleFunc("/documents/counts", h.Document.Counts).Methods(http.MethodGet)
	priv.HandleFunc("/documents/{id}/content", h.Document.Content).Methods(http.MethodGet)
	priv.HandleFunc("/documents/{id}", h.Document.Delete).Methods(http.MethodDelete)

	priv.HandleFunc("/donors/{id}/findings", h.Finding.ListByDonor).Methods(http.MethodGet)
	priv.HandleFunc("/donors/{id}/findings", h.Finding.Create).Methods(http.MethodPost)
	priv.HandleFunc("/findings", h.Finding.List).Methods(http.MethodGet)

	priv.HandleFunc("/settings", h.Setting.List).Methods(http.MethodGet)
	priv.HandleFunc("/settings", h.Setting.Create).Methods(http.MethodPost)
	priv.HandleFunc("/settings/{id}", h.Setting.Update).Methods(http.MethodPatch)
	priv.HandleFunc("/settings/{id}", h.Setting.Delete).Methods(http.MethodDelete)

	// Admin.
	admin := priv.PathPrefix("/users").Subrouter()
	admin.Use(middleware.AdminOnly)
	admin.HandleFunc("", h.User.List).Methods(http.MethodGet)
	admin.HandleFunc("", h.User.Create).Methods(http.MethodPost)
	admin.HandleFunc("/{id}", h.User.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/{id}", h.User.Delete).Methods(http.MethodDelete)

	return middleware.Chain(cfg.Middleware...)(r)
}
