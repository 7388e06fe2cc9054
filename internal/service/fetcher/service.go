package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jaksa-v/stock-tracker/internal/domain/price"
	"github.com/jaksa-v/stock-tracker/internal/domain/quote"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
	"github.com/jaksa-v/stock-tracker/internal/notify"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

// Outcome classifies the result of one symbol's fetch
type Outcome string

const (
	OutcomeStored      Outcome = "stored"
	OutcomeFetchFailed Outcome = "fetch_failed" // source had no usable data
	OutcomeRateLimited Outcome = "rate_limited" // local daily budget exhausted
	OutcomeError       Outcome = "error"        // transport, payload or storage error
)

// Result records one symbol's outcome within a run
type Result struct {
	Symbol  string
	Outcome Outcome
	Err     error
}

// Report summarizes a fetch run
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
	Stored     int
	Failed     int
}

// Service fetches the latest quote for every known stock, persists a
// snapshot per success and write-through primes the read cache.
// One symbol's failure never aborts the run.
type Service struct {
	stocks   stock.Repository
	prices   price.Repository
	source   quote.Source
	quota    Quota
	notifier notify.Notifier
	views    *prices.Service
}

// New creates a fetch service
func New(stocks stock.Repository, priceRepo price.Repository, source quote.Source, quota Quota, notifier notify.Notifier, views *prices.Service) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		stocks:   stocks,
		prices:   priceRepo,
		source:   source,
		quota:    quota,
		notifier: notifier,
		views:    views,
	}
}

// Run processes every stock in directory order, sequentially, and
// returns the run report. It fails only when the directory itself cannot
// be listed.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now()}

	stocks, err := s.stocks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}

	if len(stocks) == 0 {
		log.Info().Msg("No stocks to fetch")
		report.FinishedAt = time.Now()
		return report, nil
	}

	log.Info().Int("count", len(stocks)).Msg("Fetching stock prices")

	for _, st := range stocks {
		result := s.processStock(ctx, st)
		report.Results = append(report.Results, result)

		if result.Outcome == OutcomeStored {
			report.Stored++
		} else {
			report.Failed++
		}
	}

	// Prime the aggregate projection once every per-symbol write landed
	if err := s.views.PrimeLatestAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to prime aggregate latest-price cache")
	}

	report.FinishedAt = time.Now()

	log.Info().
		Int("stored", report.Stored).
		Int("failed", report.Failed).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Finished fetching stock prices")

	return report, nil
}

// processStock fetches, persists and cache-primes one symbol
func (s *Service) processStock(ctx context.Context, st stock.Stock) Result {
	ok, err := s.quota.TryConsume(ctx)
	if err != nil {
		// Counter trouble must not blow the daily budget enforcement up
		// into a run failure; proceed and let the source answer.
		log.Warn().Err(err).Str("symbol", st.Symbol).Msg("Quota check failed, calling source anyway")
	} else if !ok {
		message := "Daily rate limit exceeded for Alpha Vantage API"
		log.Warn().Str("symbol", st.Symbol).Msg(message)
		s.notifier.Notify(ctx, notify.Event{
			Message: message,
			Source:  "AlphaVantage API: Rate Limit",
			Context: map[string]any{"symbol": st.Symbol},
		})
		return Result{Symbol: st.Symbol, Outcome: OutcomeRateLimited}
	}

	q, err := s.source.GetIntradayQuote(ctx, st.Symbol)
	if err != nil {
		return s.classifyFetchError(ctx, st, err)
	}

	snap := &price.Snapshot{
		StockID:    st.ID,
		Open:       q.Open,
		High:       q.High,
		Low:        q.Low,
		Close:      q.Close,
		Volume:     q.Volume,
		ObservedAt: q.Timestamp,
	}

	if err := s.prices.Insert(ctx, snap); err != nil {
		log.Error().Err(err).Str("symbol", st.Symbol).Msg("Failed to persist snapshot")
		s.notifier.Notify(ctx, notify.Event{
			Message: err.Error(),
			Source:  "AlphaVantage API: Exception",
			Context: map[string]any{"symbol": st.Symbol},
		})
		return Result{Symbol: st.Symbol, Outcome: OutcomeError, Err: err}
	}

	s.views.PrimeStockLatest(ctx, st, snap)

	log.Info().
		Str("symbol", st.Symbol).
		Str("close", q.Close.String()).
		Time("observed_at", q.Timestamp).
		Msg("Stored price snapshot")

	return Result{Symbol: st.Symbol, Outcome: OutcomeStored}
}

// classifyFetchError logs and notifies per error class
func (s *Service) classifyFetchError(ctx context.Context, st stock.Stock, err error) Result {
	switch {
	case errors.Is(err, quote.ErrNoData):
		// The source answered with an empty series; nothing to notify
		log.Warn().Str("symbol", st.Symbol).Msg("No quote data for symbol")
		return Result{Symbol: st.Symbol, Outcome: OutcomeFetchFailed, Err: err}

	case errors.Is(err, quote.ErrSourceError):
		log.Error().Err(err).Str("symbol", st.Symbol).Msg("Quote source reported an error")
		s.notifier.Notify(ctx, notify.Event{
			Message: err.Error(),
			Source:  "AlphaVantage API: API Response Error",
			Context: map[string]any{"symbol": st.Symbol},
		})
		return Result{Symbol: st.Symbol, Outcome: OutcomeFetchFailed, Err: err}

	default:
		log.Error().Err(err).Str("symbol", st.Symbol).Msg("Failed to fetch quote")
		s.notifier.Notify(ctx, notify.Event{
			Message: err.Error(),
			Source:  "AlphaVantage API: HTTP Error",
			Context: map[string]any{"symbol": st.Symbol},
		})
		return Result{Symbol: st.Symbol, Outcome: OutcomeError, Err: err}
	}
}
