package datasource

import (
	"testing"

	"github.com/Satvik-jain/Market-pulse/internal/sentiment"
)

func TestPriceBarsFromAlphaVantageSkipsBadRows(t *testing.T) {
	resp := &avDailyResponse{TimeSeries: map[string]avBar{
		"2024-02-29": {Open: "182.51", High: "184.00", Low: "181.90", Close: "183.12", Volume: "51240300"},
		"2024-02-28": {Open: "not-a-number", High: "1", Low: "1", Close: "1", Volume: "1"},
	}}

	bars := priceBarsFromAlphaVantage(resp)
	if len(bars) != 1 {
		t.Fatalf("expected bad row skipped, got %d bars", len(bars))
	}
	if bars[0].Date != "2024-02-29" {
		t.Errorf("date = %s", bars[0].Date)
	}
}

func TestPriceBarsFromYahooChartSkipsNilQuotes(t *testing.T) {
	open1, high1, low1, close1 := 181.2, 182.9, 180.13, 182.55
	open2, high2, low2, close2 := 182.51, 184.0, 181.9, 183.123
	var vol1, vol2 int64 = 48310200, 51240300

	result := &yhChartResult{
		Timestamp: []int64{1709078400, 1709082000, 1709164800},
	}
	result.Indicators.Quote = []yhOHLCV{{
		Open:   []*float64{&open1, nil, &open2},
		High:   []*float64{&high1, nil, &high2},
		Low:    []*float64{&low1, nil, &low2},
		Close:  []*float64{&close1, nil, &close2},
		Volume: []*int64{&vol1, nil, &vol2},
	}}

	bars := priceBarsFromYahooChart(result)
	if len(bars) != 2 {
		t.Fatalf("expected nil row skipped, got %d bars", len(bars))
	}
	if bars[1].Close != 183.12 {
		t.Errorf("close not rounded: %f", bars[1].Close)
	}
}

func TestPriceBarsFromYahooChartCollapsesDuplicateDays(t *testing.T) {
	open, high, low := 181.2, 182.9, 180.13
	earlyClose, lateClose := 181.5, 182.55

	// Two timestamps inside the same UTC calendar day.
	result := &yhChartResult{
		Timestamp: []int64{1709078400, 1709100000},
	}
	result.Indicators.Quote = []yhOHLCV{{
		Open:  []*float64{&open, &open},
		High:  []*float64{&high, &high},
		Low:   []*float64{&low, &low},
		Close: []*float64{&earlyClose, &lateClose},
	}}

	bars := priceBarsFromYahooChart(result)
	if len(bars) != 1 {
		t.Fatalf("expected duplicate day collapsed, got %d bars", len(bars))
	}
	if bars[0].Close != 182.55 {
		t.Errorf("expected later bar to win, close = %f", bars[0].Close)
	}
}

func TestArticlesFromNewsAPISkipsUntitled(t *testing.T) {
	resp := &naEverythingResponse{Status: "ok"}
	resp.Articles = []naArticle{
		{Title: "", URL: "https://example.com/x", PublishedAt: "2024-02-29T10:00:00Z"},
		{Title: "Shares rally on upgrade", URL: "", PublishedAt: "2024-02-29T10:00:00Z"},
	}

	articles := articlesFromNewsAPI(resp, sentiment.Score)
	if len(articles) != 1 {
		t.Fatalf("expected untitled article dropped, got %d", len(articles))
	}
	if articles[0].URL != "#" {
		t.Errorf("missing url should become #, got %q", articles[0].URL)
	}
	if articles[0].SentimentLabel != "positive" {
		t.Errorf("label = %q", articles[0].SentimentLabel)
	}
}

func TestCleanHTML(t *testing.T) {
	got := cleanHTML("<p>Shares <b>rally</b> on upgrade</p>")
	if got != "Shares rally on upgrade" {
		t.Errorf("cleanHTML = %q", got)
	}
	if cleanHTML("") != "" {
		t.Error("empty input should stay empty")
	}
}
