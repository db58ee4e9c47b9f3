package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/estimator/internal/auth"
	"github.com/mmynk/estimator/internal/config"
	"github.com/mmynk/estimator/internal/estimate"
	"github.com/mmynk/estimator/internal/metrics"
	"github.com/mmynk/estimator/internal/middleware"
	"github.com/mmynk/estimator/internal/service"
	"github.com/mmynk/estimator/internal/storage/sqlite"
	"github.com/mmynk/estimator/internal/templates"
	"github.com/mmynk/estimator/pkg/api"
	"github.com/mmynk/estimator/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	catalog, err := loadTemplates(cfg.TemplatesDir)
	if err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry := estimate.NewRegistry(store, estimate.WithMetrics(metrics.New(reg)))

	var interceptors []connect.Interceptor
	if cfg.AuthEnabled() {
		interceptors = append(interceptors, middleware.RequireAuth(auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, tokenDuration)))
		slog.Info("Bearer token auth enabled", "issuer", cfg.JWTIssuer)
	} else {
		slog.Warn("JWT_SECRET not set, API is unauthenticated")
	}
	interceptors = append(interceptors, middleware.LoggingInterceptor())

	mux := http.NewServeMux()
	path, handler := api.NewEstimateServiceHandler(
		service.NewEstimateService(store, registry, catalog),
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	slog.Info("Connect server starting", "address", cfg.Addr(), "url", "http://localhost"+cfg.Addr())
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// loadTemplates merges templates from dir over the built-in ones. A missing
// directory is not an error.
func loadTemplates(dir string) (*templates.Catalog, error) {
	catalog, err := templates.Builtin()
	if err != nil {
		return nil, err
	}
	local, err := templates.LoadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("No templates directory, using built-in templates", "path", dir)
		return catalog, nil
	}
	if err != nil {
		return nil, err
	}
	catalog.Merge(local)
	slog.Info("Templates loaded", "path", dir, "count", len(catalog.List()))
	return catalog, nil
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
