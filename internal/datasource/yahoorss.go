package datasource

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Satvik-jain/Market-pulse/pkg/utils"
)

// DefaultYahooRSSURL is the Yahoo Finance per-ticker headline feed
// template; %s is replaced by the ticker.
const DefaultYahooRSSURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"

// YahooRSS is the secondary news provider, reading the per-ticker Yahoo
// Finance headline feed.
type YahooRSS struct {
	FeedURL string // printf template with one %s for the ticker
	parser  *gofeed.Parser
	limiter *RateLimiter
}

// NewYahooRSS creates the RSS news client.
func NewYahooRSS() *YahooRSS {
	return &YahooRSS{
		FeedURL: DefaultYahooRSSURL,
		parser:  gofeed.NewParser(),
		limiter: NewRateLimiter(2, time.Second),
	}
}

// Name returns the provider name.
func (y *YahooRSS) Name() string { return "Yahoo Finance RSS" }

// Headlines fetches and parses the ticker's headline feed.
func (y *YahooRSS) Headlines(ctx context.Context, ticker string) ([]*gofeed.Item, error) {
	symbol := utils.NormalizeTicker(ticker)

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := y.parser.ParseURLWithContext(fmt.Sprintf(y.FeedURL, url.QueryEscape(symbol)), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse yahoo rss %s: %w", symbol, err)
	}

	return feed.Items, nil
}
