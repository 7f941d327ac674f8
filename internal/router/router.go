package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	_ "dogs-api/docs"
	mem "dogs-api/internal/adapters/storage/memory"
	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/middleware"
	"dogs-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// ReadyCheck se ejecuta en /ready; un error marca el servicio como no listo.
type ReadyCheck func(ctx context.Context) error

type Options struct {
	Logger logger.Logger // puede ser nil (no loguea)

	// Opcional: si viene, se usa tal cual (Postgres, cache...). Si no, in-memory.
	Repo dogs.Repository

	// Opcional: registry donde se publican las métricas y que expone /metrics.
	Registry *prometheus.Registry

	ReadyChecks map[string]ReadyCheck
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World!"})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/ready", readyHandler(opts.ReadyChecks))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewDogsRepo()
	}
	repo = dogs.NewMetricsRepository(reg, repo)

	dogs.RegisterRoutes(r, dogs.NewService(repo))

	return r
}

func readyHandler(checks map[string]ReadyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failed := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			middleware.Logger(r.Context()).Warn("readiness check failed", map[string]any{"checks": failed})
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "checks": failed})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
