package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Satvik-jain/Market-pulse/internal/config"
	"github.com/Satvik-jain/Market-pulse/internal/datasource"
	"github.com/Satvik-jain/Market-pulse/pkg/models"
	"github.com/Satvik-jain/Market-pulse/pkg/utils"
)

// newTestServer builds a server whose provider clients all point at an
// upstream that always fails, so every chain ends at the synthetic
// generator.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)

	av := datasource.NewAlphaVantage("test-key")
	av.BaseURL = down.URL
	yh := datasource.NewYahoo()
	yh.BaseURL = down.URL
	na := datasource.NewNewsAPI("test-key")
	na.BaseURL = down.URL
	rss := datasource.NewYahooRSS()
	rss.FeedURL = down.URL + "/%s"

	agg := datasource.NewAggregator(datasource.AggregatorConfig{
		AlphaVantage: av,
		Yahoo:        yh,
		NewsAPI:      na,
		RSS:          rss,
		Synthetic:    datasource.NewSynthetic(42),
		Logger:       zerolog.Nop(),
	})

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.Cache.CleanupInterval = 3600
	cache := datasource.NewResponseCache(
		time.Duration(cfg.Cache.TTL)*time.Second,
		time.Duration(cfg.Cache.CleanupInterval)*time.Second,
	)

	return newServer(cfg, agg, cache, zerolog.Nop())
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestStockDataSyntheticFallback(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/stock_data?ticker=AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var bars []models.PriceBar
	if err := json.Unmarshal(rec.Body.Bytes(), &bars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// A year of business days.
	if len(bars) < 240 || len(bars) > 262 {
		t.Errorf("expected ~260 business-day bars, got %d", len(bars))
	}
	for i, bar := range bars {
		day, err := time.Parse(utils.DateLayout, bar.Date)
		if err != nil {
			t.Fatalf("bad date %q: %v", bar.Date, err)
		}
		if utils.IsWeekend(day) {
			t.Errorf("bar on weekend: %s", bar.Date)
		}
		if i > 0 && bars[i].Date <= bars[i-1].Date {
			t.Errorf("dates not strictly increasing at %d: %s then %s", i, bars[i-1].Date, bars[i].Date)
		}
	}
}

func TestStockDataInvalidTicker(t *testing.T) {
	srv := newTestServer(t)

	for _, ticker := range []string{"xyz123", "TOOLONGG", "BRK.B", "%20"} {
		rec := doRequest(t, srv, "/api/stock_data?ticker="+ticker)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("ticker %q: status = %d, want 400", ticker, rec.Code)
			continue
		}
		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error != "Invalid ticker symbol format" {
			t.Errorf("error = %q", body.Error)
		}
	}
}

func TestStockDataDefaultsToAAPL(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/stock_data")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var bars []models.PriceBar
	if err := json.Unmarshal(rec.Body.Bytes(), &bars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(bars) == 0 {
		t.Error("expected a series for the default ticker")
	}
}

func TestValidateTickerMalformed(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/validate_ticker?ticker=xyz123")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Valid {
		t.Error("valid = true for malformed ticker")
	}
	if body.Ticker != "XYZ123" {
		t.Errorf("ticker = %q, want XYZ123", body.Ticker)
	}
}

func TestValidateTickerEmpty(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/validate_ticker")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestValidateTickerKnown(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/validate_ticker?ticker=aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Valid || body.Ticker != "AAPL" {
		t.Errorf("body = %+v", body)
	}
}

func TestValidateTickerUnknownProbeFails(t *testing.T) {
	srv := newTestServer(t)

	// Not in the known set and the probe upstream is down: fails open to
	// false with a 200.
	rec := doRequest(t, srv, "/api/validate_ticker?ticker=QQQQ")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Valid {
		t.Error("probe failure should report valid=false")
	}
}

func TestStockSentimentSyntheticRanges(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/stock_sentiment?ticker=ZZZZ")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary models.SentimentSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Buzz < 0.6 || summary.Buzz > 0.95 {
		t.Errorf("buzz = %f, want [0.6, 0.95]", summary.Buzz)
	}
	if summary.SentimentScore < 0.4 || summary.SentimentScore > 0.7 {
		t.Errorf("sentiment_score = %f, want [0.4, 0.7]", summary.SentimentScore)
	}
	if summary.SectorSentiment != 0.58 {
		t.Errorf("sector_sentiment = %f, want 0.58", summary.SectorSentiment)
	}
}

func TestCompanyNewsSyntheticFallback(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/company_news?ticker=TSLA")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var articles []models.NewsArticle
	if err := json.Unmarshal(rec.Body.Bytes(), &articles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(articles) != 10 {
		t.Fatalf("expected 10 articles, got %d", len(articles))
	}
	for _, a := range articles {
		switch a.SentimentLabel {
		case "positive", "negative", "neutral":
		default:
			t.Errorf("bad label %q", a.SentimentLabel)
		}
	}
}

func TestStockMetricsSyntheticFallback(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/stock_metrics?ticker=MSFT")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var record models.MetricsRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Sector == "" || record.Exchange == "" {
		t.Errorf("incomplete record: %+v", record)
	}
}

func TestCacheIdempotenceWithinTTL(t *testing.T) {
	srv := newTestServer(t)

	first := doRequest(t, srv, "/api/stock_data?ticker=GOOGL")
	second := doRequest(t, srv, "/api/stock_data?ticker=GOOGL")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("repeated request within TTL should serve the identical cached payload")
	}
}

func TestStockOverview(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/stock_overview?ticker=AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var overview models.StockOverview
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if overview.Ticker != "AAPL" {
		t.Errorf("ticker = %q", overview.Ticker)
	}
	if len(overview.Prices) == 0 || len(overview.News) == 0 {
		t.Error("overview missing prices or news")
	}
	if overview.Sentiment == nil || overview.Metrics == nil {
		t.Error("overview missing sentiment or metrics")
	}

	// Overview legs share the cache with the standalone endpoints.
	direct := doRequest(t, srv, "/api/company_news?ticker=AAPL")
	var articles []models.NewsArticle
	if err := json.Unmarshal(direct.Body.Bytes(), &articles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(articles) != len(overview.News) || articles[0].Title != overview.News[0].Title {
		t.Error("standalone endpoint should serve the overview's cached payload")
	}
}

func TestUnmatchedRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/api/nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Resource not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestPagesRender(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/about"} {
		rec := doRequest(t, srv, path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: content type = %q", path, ct)
		}
		if !strings.Contains(rec.Body.String(), "Market Pulse") {
			t.Errorf("%s: body missing page title", path)
		}
	}
}
