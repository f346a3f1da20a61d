// Package models defines the canonical data shapes served by Market Pulse.
// Every provider's native payload is adapted into one of these four shapes
// before it leaves the datasource layer.
package models

// Category identifies one of the four kinds of per-ticker data the server
// aggregates. It is the first half of every cache key.
type Category string

const (
	CategoryPrices    Category = "stock_data"
	CategoryNews      Category = "news"
	CategorySentiment Category = "sentiment"
	CategoryMetrics   Category = "metrics"
)

// PriceBar is a single daily OHLCV bar. Price fields are rounded to two
// decimal places; Date is a calendar day in YYYY-MM-DD form. Within a
// series, dates are unique and strictly increasing.
type PriceBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// NewsArticle is a scored headline. Sentiment is a polarity in [-1, 1];
// SentimentLabel is derived from it by fixed thresholds (>0.1 positive,
// <-0.1 negative, else neutral). URL is "#" when the source had no link.
type NewsArticle struct {
	Title          string  `json:"title"`
	Source         string  `json:"source"`
	URL            string  `json:"url"`
	PublishedAt    string  `json:"publishedAt"`
	Sentiment      float64 `json:"sentiment"`
	SentimentLabel string  `json:"sentiment_label"`
}

// SentimentSummary is the aggregate mood for a ticker. All three values
// are normalized to [0, 1].
type SentimentSummary struct {
	Buzz            float64 `json:"buzz"`
	SentimentScore  float64 `json:"sentiment_score"`
	SectorSentiment float64 `json:"sector_sentiment"`
}

// MetricsRecord holds key fundamentals as pre-formatted display strings
// ("2.45T", "$198.11", "0.96 (0.52%)"). Individually-missing upstream
// fields degrade to "N/A" rather than failing the record.
type MetricsRecord struct {
	Sector    string `json:"sector"`
	Exchange  string `json:"exchange"`
	PE        string `json:"pe"`
	MarketCap string `json:"market_cap"`
	YearHigh  string `json:"year_high"`
	YearLow   string `json:"year_low"`
	AvgVolume string `json:"avg_volume"`
	Dividend  string `json:"dividend"`
	Beta      string `json:"beta"`
	EPS       string `json:"eps"`
}

// StockOverview bundles all four categories for a single ticker, as served
// by /api/stock_overview.
type StockOverview struct {
	Ticker    string            `json:"ticker"`
	Prices    []PriceBar        `json:"prices"`
	News      []NewsArticle     `json:"news"`
	Sentiment *SentimentSummary `json:"sentiment"`
	Metrics   *MetricsRecord    `json:"metrics"`
}
