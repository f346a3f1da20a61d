package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/Satvik-jain/Market-pulse/pkg/utils"
)

// DefaultAlphaVantageURL is the production Alpha Vantage endpoint.
const DefaultAlphaVantageURL = "https://www.alphavantage.co"

// AlphaVantage is the primary daily price series provider.
type AlphaVantage struct {
	BaseURL string
	apiKey  string
	limiter *RateLimiter
}

// NewAlphaVantage creates an Alpha Vantage client. The free tier allows
// 5 requests per minute.
func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{
		BaseURL: DefaultAlphaVantageURL,
		apiKey:  apiKey,
		limiter: NewRateLimiter(5, time.Minute),
	}
}

// Name returns the provider name.
func (a *AlphaVantage) Name() string { return "Alpha Vantage" }

// --- Alpha Vantage native response types ---

type avDailyResponse struct {
	TimeSeries   map[string]avBar `json:"Time Series (Daily)"`
	Note         string           `json:"Note"`
	ErrorMessage string           `json:"Error Message"`
}

// avBar carries the stringly-typed fields Alpha Vantage emits per day.
type avBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// DailySeries fetches the TIME_SERIES_DAILY payload for a ticker. An empty
// time series (rate-limit notes included) is left for the caller's
// usability check; only transport and parse failures are errors.
func (a *AlphaVantage) DailySeries(ctx context.Context, ticker string) (*avDailyResponse, error) {
	symbol := utils.NormalizeTicker(ticker)

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&outputsize=full&symbol=%s&apikey=%s",
		a.BaseURL, url.QueryEscape(symbol), url.QueryEscape(a.apiKey))

	body, _, err := doGet(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("alphavantage daily %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp avDailyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse alphavantage daily: %w", err)
	}

	if resp.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage API error: %s", resp.ErrorMessage)
	}

	return &resp, nil
}
