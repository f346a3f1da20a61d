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

// DefaultYahooURL is the production Yahoo Finance query endpoint.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// Yahoo is the secondary price provider, the single fundamentals feed, and
// the existence probe target.
type Yahoo struct {
	BaseURL string
	limiter *RateLimiter
}

// NewYahoo creates a Yahoo Finance client.
func NewYahoo() *Yahoo {
	return &Yahoo{
		BaseURL: DefaultYahooURL,
		limiter: NewRateLimiter(5, time.Second),
	}
}

// Name returns the provider name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance native response types ---

type yhChartResponse struct {
	Chart struct {
		Result []yhChartResult `json:"result"`
		Error  *yhError        `json:"error"`
	} `json:"chart"`
}

type yhChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []yhOHLCV `json:"quote"`
	} `json:"indicators"`
}

type yhOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yhInfoResponse struct {
	QuoteSummary struct {
		Result []yhInfoResult `json:"result"`
		Error  *yhError       `json:"error"`
	} `json:"quoteSummary"`
}

type yhInfoResult struct {
	Price struct {
		Symbol       string `json:"symbol"`
		ExchangeName string `json:"exchangeName"`
		MarketCap    yhVal  `json:"marketCap"`
	} `json:"price"`
	SummaryProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"summaryProfile"`
	SummaryDetail struct {
		TrailingPE                  yhVal `json:"trailingPE"`
		FiftyTwoWeekHigh            yhVal `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow             yhVal `json:"fiftyTwoWeekLow"`
		AverageVolume               yhVal `json:"averageVolume"`
		TrailingAnnualDividendRate  yhVal `json:"trailingAnnualDividendRate"`
		TrailingAnnualDividendYield yhVal `json:"trailingAnnualDividendYield"`
		Beta                        yhVal `json:"beta"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		TrailingEPS yhVal `json:"trailingEps"`
	} `json:"defaultKeyStatistics"`
}

// yhVal is Yahoo's {raw, fmt} number wrapper. Missing fields decode to a
// zero Raw, which the normalizer degrades to "N/A".
type yhVal struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yhError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Chart fetches roughly a year of daily candles from the v8 chart API.
func (y *Yahoo) Chart(ctx context.Context, ticker string) (*yhChartResult, error) {
	symbol := utils.NormalizeTicker(ticker)

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d", y.BaseURL, url.PathEscape(symbol))
	body, _, err := doGet(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yhChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo chart: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}

	return &resp.Chart.Result[0], nil
}

// Info fetches the quoteSummary modules backing the metrics record. The
// same call serves as the lightweight existence probe: any transport
// failure or missing symbol means "does not exist" to the validator.
func (y *Yahoo) Info(ctx context.Context, ticker string) (*yhInfoResult, error) {
	symbol := utils.NormalizeTicker(ticker)

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	modules := "price,summaryProfile,summaryDetail,defaultKeyStatistics"
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s", y.BaseURL, url.PathEscape(symbol), modules)
	body, _, err := doGet(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("yahoo info %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yhInfoResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo info: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo info error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}

	return &resp.QuoteSummary.Result[0], nil
}
