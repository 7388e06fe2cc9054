package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jaksa-v/stock-tracker/internal/domain/quote"
	"github.com/jaksa-v/stock-tracker/internal/pkg/config"
)

const timestampLayout = "2006-01-02 15:04:05"

// Client handles Alpha Vantage API requests
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	loc        *time.Location // timezone of source-provided timestamps
	retries    int            // extra attempts on transport failure
	retryDelay time.Duration
}

// NewClient creates a new Alpha Vantage client
func NewClient(cfg *config.Config) (*Client, error) {
	loc, err := time.LoadLocation(cfg.AlphaVantage.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load source timezone %s: %w", cfg.AlphaVantage.Timezone, err)
	}

	return &Client{
		baseURL:    cfg.AlphaVantage.BaseURL,
		apiKey:     cfg.AlphaVantage.APIKey,
		httpClient: &http.Client{Timeout: cfg.AlphaVantage.Timeout},
		loc:        loc,
		retries:    cfg.AlphaVantage.Retries,
		retryDelay: cfg.AlphaVantage.RetryDelay,
	}, nil
}

// intradayResponse represents the TIME_SERIES_INTRADAY payload.
// The series maps "2006-01-02 15:04:05" timestamps to OHLCV points.
type intradayResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	TimeSeries   map[string]intradayDataPoint `json:"Time Series (1min)"`
}

type intradayDataPoint struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// GetIntradayQuote fetches the most recent 1-minute quote for a symbol
func (c *Client) GetIntradayQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	reqURL := c.buildURL(symbol)

	resp, err := c.doWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage error: status=%d body=%s", resp.StatusCode, truncate(respBody, 200))
	}

	var payload intradayResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: %s", quote.ErrSourceError, payload.ErrorMessage)
	}

	if len(payload.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w: %s", quote.ErrNoData, symbol)
	}

	// The series is keyed by timestamp strings in a sortable layout, so
	// the most recent point has the greatest key
	var latest string
	for ts := range payload.TimeSeries {
		if ts > latest {
			latest = ts
		}
	}

	return c.convertQuote(symbol, latest, payload.TimeSeries[latest])
}

// doWithRetry executes the request, retrying transport failures a fixed
// number of times with a short fixed delay
func (c *Client) doWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
			log.Debug().
				Int("attempt", attempt+1).
				Msg("Retrying Alpha Vantage request")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("execute request after %d attempts: %w", c.retries+1, lastErr)
}

func (c *Client) buildURL(symbol string) string {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", "1min")
	q.Set("outputsize", "compact")
	q.Set("apikey", c.apiKey)
	return c.baseURL + "?" + q.Encode()
}

// convertQuote converts a series data point to a quote.Quote
func (c *Client) convertQuote(symbol, timestamp string, point intradayDataPoint) (*quote.Quote, error) {
	observedAt, err := time.ParseInLocation(timestampLayout, timestamp, c.loc)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", timestamp, err)
	}

	open, err := decimal.NewFromString(point.Open)
	if err != nil {
		return nil, fmt.Errorf("parse open %q: %w", point.Open, err)
	}
	high, err := decimal.NewFromString(point.High)
	if err != nil {
		return nil, fmt.Errorf("parse high %q: %w", point.High, err)
	}
	low, err := decimal.NewFromString(point.Low)
	if err != nil {
		return nil, fmt.Errorf("parse low %q: %w", point.Low, err)
	}
	closePrice, err := decimal.NewFromString(point.Close)
	if err != nil {
		return nil, fmt.Errorf("parse close %q: %w", point.Close, err)
	}
	volume, err := strconv.ParseInt(point.Volume, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse volume %q: %w", point.Volume, err)
	}

	return &quote.Quote{
		Symbol:    symbol,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
		Timestamp: observedAt,
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
