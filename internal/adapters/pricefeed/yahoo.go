// Package pricefeed provides the market data adapter backed by the Yahoo
// Finance chart API.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
)

// maxConcurrentFetches bounds parallel requests against the feed so a large
// symbol list does not look like scraping.
const maxConcurrentFetches = 4

// chartResponse maps the Yahoo Finance chart API response. Only the fields we
// read are declared.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooClient fetches latest close prices from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient creates a price feed client. baseURL is normally
// https://query1.finance.yahoo.com and is overridable for tests.
func NewYahooClient(baseURL string) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var _ portssvc.MarketDataSvcFacade = (*YahooClient)(nil)

// FetchPrices fetches the latest close price for every symbol concurrently.
// Any symbol that cannot be resolved fails the whole batch with
// apperrors.ErrPriceUnavailable.
func (c *YahooClient) FetchPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			price, err := c.fetchLatestClose(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

// fetchLatestClose requests 5 days of daily candles and returns the most
// recent non-zero close, so a symbol still resolves over weekends and
// holidays.
func (c *YahooClient) fetchLatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build price request for %s: %w", symbol, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: request for %s failed: %v", apperrors.ErrPriceUnavailable, symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed reading response for %s: %v", apperrors.ErrPriceUnavailable, symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: feed returned status %d for %s", apperrors.ErrPriceUnavailable, resp.StatusCode, symbol)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed response for %s: %v", apperrors.ErrPriceUnavailable, symbol, err)
	}
	if parsed.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("%w: feed error for %s: %s", apperrors.ErrPriceUnavailable, symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no results returned for %s", apperrors.ErrPriceUnavailable, symbol)
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no close prices returned for %s", apperrors.ErrPriceUnavailable, symbol)
	}

	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return decimal.NewFromFloat(closes[i]), nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: only zero closes returned for %s", apperrors.ErrPriceUnavailable, symbol)
}
