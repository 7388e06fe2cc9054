package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jaksa-v/stock-tracker/internal/infra/alphavantage"
	"github.com/jaksa-v/stock-tracker/internal/infra/database/postgres"
	"github.com/jaksa-v/stock-tracker/internal/notify"
	"github.com/jaksa-v/stock-tracker/internal/service/fetcher"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

// quotaKey is the Redis key for the shared daily call counter
const quotaKey = "alphavantage.daily_calls"

var fetchPricesCmd = &cobra.Command{
	Use:   "fetch-prices",
	Short: "Fetch latest quotes for all stocks and store snapshots",
	Long: `Fetches the most recent intraday quote for every stock in the
directory, appends a price snapshot per success and primes the read
cache. Designed to be invoked periodically by an external scheduler.`,
	RunE: runFetchPrices,
}

func runFetchPrices(cmd *cobra.Command, args []string) error {
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

	source, err := alphavantage.NewClient(cfg)
	if err != nil {
		return err
	}

	// The quota counter is shared across processes when Redis is up;
	// otherwise the run falls back to a process-local counter.
	var quota fetcher.Quota
	if redisStore != nil {
		quota = fetcher.NewRedisQuota(redisStore.Client(), quotaKey, cfg.AlphaVantage.DailyLimit)
	} else {
		quota = fetcher.NewMemoryQuota(cfg.AlphaVantage.DailyLimit)
	}

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL)
	}

	stockRepo := postgres.NewStockRepository(dbPool)
	priceRepo := postgres.NewPriceRepository(dbPool)
	priceService := prices.New(stockRepo, priceRepo, store)

	svc := fetcher.New(stockRepo, priceRepo, source, quota, notifier, priceService)

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	for _, result := range report.Results {
		if result.Outcome != fetcher.OutcomeStored {
			log.Warn().
				Str("symbol", result.Symbol).
				Str("outcome", string(result.Outcome)).
				Msg("Symbol not updated this run")
		}
	}

	return nil
}
