package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"odinary_go/internal/domain"
)

// coingeckoResponse represents the CoinGecko simple-price API response
type coingeckoResponse struct {
	Ethereum *struct {
		USD          *float64 `json:"usd"`
		USD24hChange *float64 `json:"usd_24h_change"`
	} `json:"ethereum"`
}

// PriceClient polls the token quote from the CoinGecko simple-price API.
// When the feed is unavailable the fixed fallback quote is served; retry
// beyond the fetch backoff is manual, not automatic.
type PriceClient struct {
	onUpdate     func(domain.PriceData)
	quote        domain.PriceData
	mu           sync.RWMutex
	pollInterval time.Duration
	apiURL       string
	apiKey       string
	httpClient   *http.Client
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	metrics      *Metrics
}

// NewPriceClient creates a new price client
func NewPriceClient(onUpdate func(domain.PriceData)) *PriceClient {
	return &PriceClient{
		onUpdate:     onUpdate,
		pollInterval: 60 * time.Second, // Default: 1 minute
		apiURL:       "https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=usd&include_24hr_change=true",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		metrics: GlobalMetrics,
	}
}

// NewPriceClientWithConfig creates a client with custom configuration
func NewPriceClientWithConfig(onUpdate func(domain.PriceData), apiURL, apiKey string, pollIntervalSec int) *PriceClient {
	client := NewPriceClient(onUpdate)
	if apiURL != "" {
		client.apiURL = apiURL
	}
	client.apiKey = apiKey
	if pollIntervalSec > 0 {
		client.pollInterval = time.Duration(pollIntervalSec) * time.Second
	}
	return client
}

// Start begins polling for quote updates
func (c *PriceClient) Start(ctx context.Context) error {
	// Create a cancellable context
	ctx, c.cancel = context.WithCancel(ctx)

	// Fetch immediately on start
	if err := c.fetchQuote(ctx); err != nil {
		slog.Warn("Initial price fetch failed, serving fallback quote", slog.Any("error", err))
		// Continue anyway - will retry on next tick
	}

	// Start polling goroutine
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Price polling panic recovered", slog.Any("panic", r))
			}
		}()

		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Price polling stopped")
				return
			case <-ticker.C:
				if err := c.fetchQuote(ctx); err != nil {
					slog.Warn("Price fetch failed", slog.Any("error", err))
				}
			}
		}
	}()

	return nil
}

// fetchQuote fetches the current quote with retry logic
func (c *PriceClient) fetchQuote(ctx context.Context) error {
	var lastErr error
	for i := 0; i < 3; i++ {
		if i > 0 {
			// Exponential backoff: 1s, 2s, 4s
			delay := time.Duration(1<<uint(i-1)) * time.Second
			slog.Info("Retrying price fetch", slog.Int("attempt", i), slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doFetch(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		slog.Warn("Price fetch attempt failed", slog.Int("attempt", i+1), slog.Any("error", err))
	}
	c.metrics.RecordFetchError()
	return lastErr
}

func (c *PriceClient) doFetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return domain.NewFatalNetworkError("fetch_price", err)
	}

	// Add browser-like User-Agent to avoid bot detection
	req.Header.Set("User-Agent", DefaultUserAgent)
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewNetworkError("fetch_price", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewNetworkError("fetch_price", fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewNetworkError("fetch_price", err)
	}

	var data coingeckoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return domain.NewFatalNetworkError("fetch_price", err)
	}

	if data.Ethereum == nil || data.Ethereum.USD == nil || data.Ethereum.USD24hChange == nil {
		return domain.NewFatalNetworkError("fetch_price", fmt.Errorf("unexpected price payload"))
	}

	newQuote := domain.PriceData{
		USD:          decimal.NewFromFloat(*data.Ethereum.USD),
		USD24hChange: decimal.NewFromFloat(*data.Ethereum.USD24hChange),
	}

	c.mu.Lock()
	oldQuote := c.quote
	c.quote = newQuote
	c.mu.Unlock()

	// Notify if quote changed
	changed := !oldQuote.USD.Equal(newQuote.USD) || !oldQuote.USD24hChange.Equal(newQuote.USD24hChange)
	if changed && c.onUpdate != nil {
		slog.Info("Token quote updated",
			slog.String("usd", newQuote.USD.String()),
			slog.String("change_24h", newQuote.USD24hChange.String()),
		)
		c.onUpdate(newQuote)
	}

	return nil
}

// Stop stops the polling
func (c *PriceClient) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.wg.Wait()
	}
}

// Quote returns the latest quote, or the fixed fallback when no fetch
// has succeeded yet.
func (c *PriceClient) Quote() domain.PriceData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.quote.IsZero() {
		return domain.FallbackPrice()
	}
	return c.quote
}
