// @title           Dogs API
// @version         1.0
// @description     CRUD de perros respaldado por Postgres (o memoria en dev).
// @BasePath        /
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dogs-api/internal/adapters/cache/rediscache"
	mem "dogs-api/internal/adapters/storage/memory"
	pg "dogs-api/internal/adapters/storage/postgres"
	"dogs-api/internal/config"
	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/platform/httpclient"
	"dogs-api/internal/platform/logger"
	"dogs-api/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "consulta /ready de la instancia local y termina (para HEALTHCHECK de Docker)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *healthcheck {
		os.Exit(runHealthcheck(cfg))
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	}).With(map[string]any{"env": cfg.AppEnv})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, lg)
	if err != nil {
		lg.Error("store init failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Logger:      lg,
			Repo:        st.repo,
			Registry:    reg,
			ReadyChecks: st.checks,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server ready", map[string]any{"url": "http://localhost" + srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", map[string]any{"error": err})
		}
	case <-ctx.Done():
		lg.Info("shutting down", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown error", map[string]any{"error": err})
	}
}

// store agrupa el repo elegido y lo necesario para cerrarlo y chequearlo.
type store struct {
	repo    dogs.Repository
	checks  map[string]router.ReadyCheck
	closers []func() error
}

func (s *store) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// openStore: con DSN usa Postgres (migrando si corresponde), si no memoria.
// Con dirección de Redis el repo queda detrás del cache.
func openStore(ctx context.Context, cfg config.Config, lg logger.Logger) (*store, error) {
	st := &store{checks: map[string]router.ReadyCheck{}}

	if cfg.DBDSN != "" {
		db, err := pg.Open(ctx, cfg.DBDSN, pg.PoolOptions{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db.Close)

		if cfg.Migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				st.close()
				return nil, err
			}
			lg.Info("database migrated", nil)
		}

		pgRepo := pg.NewDogsRepo(db)
		st.repo = pgRepo
		st.checks["postgres"] = pgRepo.Ping
		lg.Info("using postgres store", nil)
	} else {
		st.repo = mem.NewDogsRepo()
		lg.Warn("DOGS_DB_DSN not set, using in-memory store", nil)
	}

	if cfg.RedisAddr != "" {
		rdb, err := openRedis(ctx, cfg)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, rdb.Close)

		cached := rediscache.NewDogsRepo(rdb, cfg.CacheTTL, st.repo, lg)
		st.repo = cached
		st.checks["redis"] = cached.Ping
		lg.Info("redis cache enabled", map[string]any{"ttl": cfg.CacheTTL.String()})
	}

	return st, nil
}

func openRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func runHealthcheck(cfg config.Config) int {
	c, err := httpclient.New("http://127.0.0.1"+cfg.Addr(), 3*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := c.Ready(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
