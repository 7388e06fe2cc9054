package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jaksa-v/stock-tracker/internal/api"
	"github.com/jaksa-v/stock-tracker/internal/api/handlers"
	"github.com/jaksa-v/stock-tracker/internal/cache"
	infracache "github.com/jaksa-v/stock-tracker/internal/infra/cache"
	"github.com/jaksa-v/stock-tracker/internal/infra/database/postgres"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	store, redisStore := openCacheStore(ctx)
	if redisStore != nil {
		defer redisStore.Close()
	}

	stockRepo := postgres.NewStockRepository(dbPool)
	priceRepo := postgres.NewPriceRepository(dbPool)
	priceService := prices.New(stockRepo, priceRepo, store)

	var cachePing handlers.Pinger
	if redisStore != nil {
		cachePing = redisStore
	}

	router := api.NewRouter(cfg, priceService, dbPool, cachePing, serviceVersion)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("API server stopped")
	return nil
}

// openCacheStore connects to Redis when enabled. A failed connection
// degrades to cache-less operation rather than refusing to start.
func openCacheStore(ctx context.Context) (cache.Store, *infracache.RedisStore) {
	if !cfg.Redis.Enabled {
		log.Info().Msg("Redis disabled, running without read cache")
		return nil, nil
	}

	redisStore, err := infracache.NewRedisStore(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without read cache")
		return nil, nil
	}

	return redisStore, redisStore
}
