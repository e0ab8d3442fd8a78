package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogotex/docstore/internal/config"
	"github.com/gogotex/docstore/internal/database"
	"github.com/gogotex/docstore/internal/document/repository"
	"github.com/gogotex/docstore/internal/document/service"
	"github.com/gogotex/docstore/internal/server"
	"github.com/gogotex/docstore/pkg/logger"
	"github.com/gogotex/docstore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: backend=%s redis=%v mongo=%v rate_limit=%v", cfg.Store.Backend, cfg.Redis.Host != "", cfg.MongoDB.URI != "", cfg.RateLimit.Enabled)
	logger.Debugf("server %s:%s read_timeout=%s write_timeout=%s", cfg.Server.Host, cfg.Server.Port, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	var rdb *redis.Client
	if cfg.Redis.Addr() != "" && (cfg.Store.Backend == config.BackendRedis || cfg.RateLimit.UseRedis) {
		rdb, err = database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, 5*time.Second)
		if err != nil {
			if cfg.Store.Backend == config.BackendRedis {
				logger.Errorf("redis store unavailable: %v", err)
				return err
			}
			logger.Warnf("redis unavailable, rate limiter falls back to memory: %v", err)
		} else {
			defer rdb.Close()
		}
	}

	svc, cleanup, err := newService(ctx, cfg, rdb)
	if err != nil {
		logger.Errorf("%s store unavailable: %v", cfg.Store.Backend, err)
		return err
	}
	defer cleanup()

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(cfg, svc, rdb)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("document service listening on %s (store=%s)", addr, svc.Backend())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newService picks the repository for the configured backend. The returned
// cleanup releases backend connections.
func newService(ctx context.Context, cfg *config.Config, rdb *redis.Client) (service.Service, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return service.New(repository.NewRedisRepo(rdb, cfg.Redis.Prefix), config.BackendRedis), noop, nil
	case config.BackendMongo:
		client, err := database.ConnectMongoRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		repo, err := repository.NewMongoRepo(ctx, col)
		if err != nil {
			cleanup()
			return nil, noop, err
		}
		return service.New(repo, config.BackendMongo), cleanup, nil
	default:
		return service.NewMemoryService(), noop, nil
	}
}
