package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"conductor/internal/auth/cookie"
	authhandler "conductor/internal/auth/handler"
	"conductor/internal/auth/oauth"
	authservice "conductor/internal/auth/service"
	coursehandler "conductor/internal/course/handler"
	courseservice "conductor/internal/course/service"
	"conductor/internal/platform/config"
	"conductor/internal/platform/httpserver"
	"conductor/internal/platform/logger"
	"conductor/internal/platform/metrics"
	"conductor/internal/platform/middleware"
	"conductor/pkg/platform/httputil"
	authmw "conductor/pkg/platform/middleware/auth"
	"conductor/pkg/platform/middleware/metadata"
	"conductor/pkg/platform/middleware/requesttime"
	"conductor/pkg/requestcontext"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	infra, err := buildInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	m := metrics.New()
	publisher, closeAudit, err := buildAudit(cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	stores, err := buildStores(ctx, cfg, infra)
	if err != nil {
		return err
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = ephemeralSecret()
		if err != nil {
			return err
		}
		log.Warn("SESSION_SECRET not set, cookies will not survive a restart")
	}
	cookies := cookie.New(secret, cfg.IsProduction(), cfg.Session.TTL)

	google, err := oauth.NewGoogle(ctx, oauth.Config{
		IssuerURL:    cfg.Google.IssuerURL,
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	}, cookies)
	if err != nil {
		return err
	}

	authSvc := authservice.New(stores.users, stores.sessions, authservice.Config{
		SessionTTL:           cfg.Session.TTL,
		AllowedEmailSuffixes: cfg.Session.AllowedEmailSuffixes,
	},
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(publisher),
		authservice.WithMetrics(m),
	)
	courseSvc := courseservice.New(stores.courses, stores.enrollments, stores.lectures, stores.users,
		courseservice.WithLogger(log),
		courseservice.WithAuditPublisher(publisher),
		courseservice.WithTxRunner(stores.tx),
	)

	requireAuth := authmw.RequireSession(authSvc, cookies, log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.Frontend.Origin))
	r.Use(middleware.LatencyMiddleware(m))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/api/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	authhandler.New(authSvc, google, cookies, requireAuth, cfg.Frontend.URL, log).Register(r)
	coursehandler.New(courseSvc, requireAuth, log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting conductor",
			"addr", cfg.Addr,
			"storage_driver", cfg.StorageDriver,
			"session_backend", cfg.SessionBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

type healthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		OK:   true,
		Time: requestcontext.Now(r.Context()).UTC().Format(time.RFC3339),
	})
}
