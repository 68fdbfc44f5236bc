package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/donorbase/internal/adapter/blob"
	"github.com/heartmarshall/donorbase/internal/adapter/events"
	"github.com/heartmarshall/donorbase/internal/adapter/postgres"
	documentrepo "github.com/heartmarshall/donorbase/internal/adapter/postgres/document"
	donorrepo "github.com/heartmarshall/donorbase/internal/adapter/postgres/donor"
	findingrepo "github.com/heartmarshall/donorbase/internal/adapter/postgres/finding"
	settingrepo "github.com/heartmarshall/donorbase/internal/adapter/postgres/setting"
	userrepo "github.com/heartmarshall/donorbase/internal/adapter/postgres/user"
	"github.com/heartmarshall/donorbase/internal/auth"
	"github.com/heartmarshall/donorbase/internal/config"
	"github.com/heartmarshall/donorbase/internal/domain"
	authsvc "github.com/heartmarshall/donorbase/internal/service/auth"
	documentsvc "github.com/heartmarshall/donorbase/internal/service/document"
	donorsvc "github.com/heartmarshall/donorbase/internal/service/donor"
	findingsvc "github.com/heartmarshall/donorbase/internal/service/finding"
	settingsvc "github.com/heartmarshall/donorbase/internal/service/setting"
	usersvc "github.com/heartmarshall/donorbase/internal/service/user"
	"github.com/heartmarshall/donorbase/internal/transport/middleware"
	"github.com/heartmarshall/donorbase/internal/transport/rest"
)

type publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// Run is the records service entry point. It loads configuration, connects
// the database, blob store and broker, builds services and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// --- infrastructure ---

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: database: %w", err)
	}
	defer pool.Close()

	blobs, err := blob.New(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("app: blob store: %w", err)
	}

	pub, err := newPublisher(cfg.Events, logger)
	if err != nil {
		return fmt.Errorf("app: events: %w", err)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("close event publisher", slog.String("error", err.Error()))
		}
	}()

	txm := postgres.NewTxManager(pool)

	// --- repositories ---

	donors := donorrepo.New(pool)
	documents := documentrepo.New(pool)
	findings := findingrepo.New(pool)
	users := userrepo.New(pool)
	settings := settingrepo.New(pool)

	// --- services ---

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, jwtManager)
	donorService := donorsvc.NewService(logger, donors, documents, blobs, pub, txm)
	documentService := documentsvc.NewService(logger, documents, donors, blobs, pub, cfg.Storage.MaxUploadBytes)
	findingService := findingsvc.NewService(logger, findings, donors, documents)
	userService := usersvc.NewService(logger, users, txm)
	settingService := settingsvc.NewService(logger, settings)

	if cfg.Auth.HasBootstrapAdmin() {
		err := authService.BootstrapAdmin(ctx, authsvc.BootstrapAdminInput{
			Email:    cfg.Auth.BootstrapAdminEmail,
			Password: cfg.Auth.BootstrapAdminPassword,
			Name:     cfg.Auth.BootstrapAdminName,
		})
		if err != nil {
			return fmt.Errorf("app: bootstrap admin: %w", err)
		}
	}

	// --- transport ---

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(pool, BuildVersion()).WithComponent("storage", blobs),
		Auth:     rest.NewAuthHandler(authService, logger),
		Donor:    rest.NewDonorHandler(donorService, logger),
		Document: rest.NewDocumentHandler(documentService, cfg.Storage.MaxUploadBytes, logger),
		Finding:  rest.NewFindingHandler(findingService, logger),
		User:     rest.NewUserHandler(userService, logger),
		Setting:  rest.NewSettingHandler(settingService, logger),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	routerCfg := rest.RouterConfig{
		Middleware: []middleware.Middleware{
			middleware.RequestID,
			middleware.Recovery(logger),
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
			limiter.Limit(cfg.RateLimit.RequestsPerMinute),
			middleware.Auth(authService),
		},
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		routerCfg.Metrics = middleware.NewMetrics(reg)
		routerCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(handlers, routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done and then drains in-flight requests for
// at most timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

func newPublisher(cfg config.EventsConfig, logger *slog.Logger) (publisher, error) {
	if !cfg.Enabled() {
		return events.NewNoop(logger), nil
	}
	return events.NewRabbitMQ(cfg.RabbitMQURL, cfg.Exchange, logger)
}
