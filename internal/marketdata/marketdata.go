// Package marketdata fetches live quotes for tickers. The import/export
// engine never touches this package; only the CLI commands do, to enrich
// stored positions on demand.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the latest known price for a ticker.
type Quote struct {
	Ticker string
	Price  decimal.Decimal
	Time   time.Time
}

// Provider fetches the latest quote for a ticker.
type Provider interface {
	Latest(ctx context.Context, ticker string) (Quote, error)
}

// EODHDClient fetches quotes from the EODHD real-time endpoint.
type EODHDClient struct {
	APIKey  string
	BaseURL string       // defaults to https://eodhd.com
	HTTP    *http.Client // defaults to http.DefaultClient
}

// Latest returns the most recent close for a ticker such as "AAPL.US".
func (c *EODHDClient) Latest(ctx context.Context, ticker string) (Quote, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://eodhd.com"
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := fmt.Sprintf("%s/api/real-time/%s?api_token=%s&fmt=json",
		base, url.PathEscape(ticker), url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("building quote request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetching quote for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("fetching quote for %s: unexpected status %s", ticker, resp.Status)
	}

	var payload struct {
		Code      string  `json:"code"`
		Timestamp int64   `json:"timestamp"`
		Close     float64 `json:"close"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("decoding quote for %s: %w", ticker, err)
	}
	if payload.Close == 0 {
		return Quote{}, fmt.Errorf("no price available for %s", ticker)
	}

	return Quote{
		Ticker: payload.Code,
		Price:  decimal.NewFromFloat(payload.Close),
		Time:   time.Unix(payload.Timestamp, 0).UTC(),
	}, nil
}
