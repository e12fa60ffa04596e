package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zagvozdeen/coffeeshop/config"
	"github.com/zagvozdeen/coffeeshop/internal/converter"
)

const shutdownTimeout = 5 * time.Second

var envRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "coffeeshop_env_requests_total",
	Help: "Environment documents served, by document",
}, []string{"document"})

type Application struct {
	config config.Config
	dist   string
	logger *slog.Logger
	router chi.Router
}

// New returns an application serving cfg and the artifacts generated under dist.
func New(cfg config.Config, dist string) *Application {
	a := &Application{
		config: cfg,
		dist:   dist,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
	a.router = a.routes()
	return a
}

func (a *Application) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.With(httprate.LimitByIP(600, time.Minute)).Get("/env.json", a.handleEnv)
	r.Get("/", a.handleVersioned(converter.ReportFile, "text/html; charset=utf-8"))
	r.Get("/environment.ts", a.handleVersioned(converter.EnvironmentTSFile, "text/plain; charset=utf-8"))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(a.dist, "assets")))))
	return r
}

func (a *Application) Handler() http.Handler {
	return a.router
}

func (a *Application) handleEnv(w http.ResponseWriter, r *http.Request) {
	envRequests.WithLabelValues(converter.EnvironmentJSONFile).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(a.config); err != nil {
		a.logger.Error("Failed to write response", "err", err)
	}
}

// checkGenerated warns when the current version was generated for another environment
// than the one served at /env.json.
func (a *Application) checkGenerated() {
	version, err := converter.CurrentVersion(a.dist)
	if err != nil {
		a.logger.Warn("No generated version to compare", "err", err)
		return
	}
	b, err := os.ReadFile(filepath.Join(a.dist, version, converter.EnvironmentJSONFile))
	if err != nil {
		a.logger.Warn("Failed to read generated environment", "err", err, "version", version)
		return
	}
	var generated config.Config
	if err = json.Unmarshal(b, &generated); err != nil {
		a.logger.Warn("Failed to decode generated environment", "err", err, "version", version)
		return
	}
	if generated != a.config {
		a.logger.Warn("Generated environment differs from served environment",
			"version", version,
			"generated_production", generated.IsProduction,
			"production", a.config.IsProduction,
		)
	}
}

// handleVersioned serves name from the current version directory.
func (a *Application) handleVersioned(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := converter.CurrentVersion(a.dist)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				a.logger.Warn("No version generated", "err", err, "file", name)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			a.logger.Error("Failed to read version file", "err", err, "file", name)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		b, err := os.ReadFile(filepath.Join(a.dist, version, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				a.logger.Warn("File not found", "err", err, "file", name, "version", version)
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			a.logger.Error("Failed to read file", "err", err, "file", name, "version", version)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		envRequests.WithLabelValues(name).Inc()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err = w.Write(b); err != nil {
			a.logger.Error("Failed to write response", "err", err, "file", name, "version", version)
		}
	}
}

// Run serves on addr until ctx is cancelled.
func (a *Application) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.checkGenerated()
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", "addr", ln.Addr().String(), "production", a.config.IsProduction)
		errCh <- server.Serve(ln)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.logger.Info("Server stopped")
	return nil
}
