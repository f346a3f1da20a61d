package datasource

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Satvik-jain/Market-pulse/internal/sentiment"
	"github.com/Satvik-jain/Market-pulse/pkg/models"
	"github.com/Satvik-jain/Market-pulse/pkg/utils"
)

// DefaultFetchTimeout bounds a single upstream attempt.
const DefaultFetchTimeout = 5 * time.Second

// DefaultHistoryDays is how far back price history reaches.
const DefaultHistoryDays = 365

// DefaultNewsLimit caps the articles returned per ticker.
const DefaultNewsLimit = 10

// Aggregator runs the per-category source chains. Each category tries
// its real providers in order and falls through to the synthetic
// generator, so every method returns a usable payload.
type Aggregator struct {
	alphavantage *AlphaVantage
	yahoo        *Yahoo
	newsapi      *NewsAPI
	rss          *YahooRSS
	synthetic    *Synthetic

	score       func(string) float64
	timeout     time.Duration
	historyDays int
	newsLimit   int
	log         zerolog.Logger
}

// AggregatorConfig carries the wiring for NewAggregator. Zero-value
// fields get defaults; nil providers are skipped in their chains.
type AggregatorConfig struct {
	AlphaVantage *AlphaVantage
	Yahoo        *Yahoo
	NewsAPI      *NewsAPI
	RSS          *YahooRSS
	Synthetic    *Synthetic

	Score       func(string) float64
	Timeout     time.Duration
	HistoryDays int
	NewsLimit   int
	Logger      zerolog.Logger
}

// NewAggregator assembles the source chains.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	if cfg.Synthetic == nil {
		cfg.Synthetic = NewSynthetic(0)
	}
	if cfg.Score == nil {
		cfg.Score = sentiment.Score
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = DefaultNewsLimit
	}
	return &Aggregator{
		alphavantage: cfg.AlphaVantage,
		yahoo:        cfg.Yahoo,
		newsapi:      cfg.NewsAPI,
		rss:          cfg.RSS,
		synthetic:    cfg.Synthetic,
		score:        cfg.Score,
		timeout:      cfg.Timeout,
		historyDays:  cfg.HistoryDays,
		newsLimit:    cfg.NewsLimit,
		log:          cfg.Logger,
	}
}

func (a *Aggregator) attemptCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

// PriceHistory returns daily OHLCV bars for the ticker. Chain:
// Alpha Vantage, then Yahoo chart, then the synthetic walk.
func (a *Aggregator) PriceHistory(ctx context.Context, ticker string) []models.PriceBar {
	if a.alphavantage != nil {
		attempt, cancel := a.attemptCtx(ctx)
		resp, err := a.alphavantage.DailySeries(attempt, ticker)
		cancel()
		if err == nil {
			if bars := priceBarsFromAlphaVantage(resp); len(bars) > 0 {
				return bars
			}
			a.log.Debug().Str("ticker", ticker).Str("source", "alphavantage").
				Msg("empty price series, trying next source")
		} else {
			a.log.Warn().Err(err).Str("ticker", ticker).Str("source", "alphavantage").
				Msg("price fetch failed, trying next source")
		}
	}

	if a.yahoo != nil {
		attempt, cancel := a.attemptCtx(ctx)
		result, err := a.yahoo.Chart(attempt, ticker)
		cancel()
		if err == nil {
			if bars := priceBarsFromYahooChart(result); len(bars) > 0 {
				return bars
			}
			a.log.Debug().Str("ticker", ticker).Str("source", "yahoo").
				Msg("empty price series, trying next source")
		} else {
			a.log.Warn().Err(err).Str("ticker", ticker).Str("source", "yahoo").
				Msg("price fetch failed, trying next source")
		}
	}

	a.log.Info().Str("ticker", ticker).Msg("serving synthetic price history")
	return a.synthetic.PriceSeries(ticker, a.historyDays)
}

// realNews tries the real news providers in order and returns nil when
// neither yields a usable list.
func (a *Aggregator) realNews(ctx context.Context, ticker string) []models.NewsArticle {
	if a.newsapi != nil {
		attempt, cancel := a.attemptCtx(ctx)
		resp, err := a.newsapi.CompanyNews(attempt, ticker, a.newsLimit)
		cancel()
		if err == nil {
			if articles := articlesFromNewsAPI(resp, a.score); len(articles) > 0 {
				return articles
			}
			a.log.Debug().Str("ticker", ticker).Str("source", "newsapi").
				Msg("no articles, trying next source")
		} else {
			a.log.Warn().Err(err).Str("ticker", ticker).Str("source", "newsapi").
				Msg("news fetch failed, trying next source")
		}
	}

	if a.rss != nil {
		attempt, cancel := a.attemptCtx(ctx)
		items, err := a.rss.Headlines(attempt, ticker)
		cancel()
		if err == nil {
			if articles := articlesFromRSS(items, "Yahoo Finance", a.score); len(articles) > 0 {
				return articles
			}
			a.log.Debug().Str("ticker", ticker).Str("source", "yahoo_rss").
				Msg("no articles, trying next source")
		} else {
			a.log.Warn().Err(err).Str("ticker", ticker).Str("source", "yahoo_rss").
				Msg("news fetch failed, trying next source")
		}
	}

	return nil
}

// CompanyNews returns scored articles for the ticker, capped at the
// configured limit. Chain: NewsAPI, then the Yahoo RSS feed, then the
// synthetic generator.
func (a *Aggregator) CompanyNews(ctx context.Context, ticker string) []models.NewsArticle {
	articles := a.realNews(ctx, ticker)
	if articles == nil {
		a.log.Info().Str("ticker", ticker).Msg("serving synthetic news")
		articles = a.synthetic.News(ticker)
	}
	if len(articles) > a.newsLimit {
		articles = articles[:a.newsLimit]
	}
	return articles
}

// Sentiment returns an aggregate summary for the ticker. When real news
// is available the summary is derived from article polarity; otherwise
// the synthetic generator supplies one.
func (a *Aggregator) Sentiment(ctx context.Context, ticker string) models.SentimentSummary {
	articles := a.realNews(ctx, ticker)
	if len(articles) == 0 {
		a.log.Info().Str("ticker", ticker).Msg("serving synthetic sentiment")
		return a.synthetic.Summary(ticker)
	}

	var sum float64
	for _, article := range articles {
		sum += article.Sentiment
	}
	mean := sum / float64(len(articles))

	buzz := float64(len(articles)) / 20
	if buzz > 1 {
		buzz = 1
	}
	return models.SentimentSummary{
		Buzz:            round2(buzz),
		SentimentScore:  round2((mean + 1) / 2),
		SectorSentiment: 0.5,
	}
}

// Metrics returns the fundamentals record. Chain: Yahoo quoteSummary,
// then the synthetic generator.
func (a *Aggregator) Metrics(ctx context.Context, ticker string) models.MetricsRecord {
	if a.yahoo != nil {
		attempt, cancel := a.attemptCtx(ctx)
		info, err := a.yahoo.Info(attempt, ticker)
		cancel()
		if err == nil {
			if record := metricsFromYahooInfo(info); record != nil {
				return *record
			}
		} else {
			a.log.Warn().Err(err).Str("ticker", ticker).Str("source", "yahoo").
				Msg("metrics fetch failed, trying next source")
		}
	}

	a.log.Info().Str("ticker", ticker).Msg("serving synthetic metrics")
	return a.synthetic.Metrics(ticker)
}

// TickerExists reports whether a well-formed ticker refers to a real
// listing. Well-known tickers short-circuit to true; anything else is
// probed against Yahoo, and probe failures count as nonexistent.
func (a *Aggregator) TickerExists(ctx context.Context, ticker string) bool {
	if utils.IsKnownTicker(ticker) {
		return true
	}
	if a.yahoo == nil {
		return false
	}
	attempt, cancel := a.attemptCtx(ctx)
	defer cancel()

	info, err := a.yahoo.Info(attempt, ticker)
	if err != nil {
		a.log.Debug().Err(err).Str("ticker", ticker).Msg("existence probe failed")
		return false
	}
	return info != nil && info.Price.Symbol != ""
}

// Overview fetches all four categories concurrently and assembles them
// into one payload. Individual categories never fail, so neither does
// the overview.
func (a *Aggregator) Overview(ctx context.Context, ticker string) *models.StockOverview {
	overview := &models.StockOverview{Ticker: ticker}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview.Prices = a.PriceHistory(gctx, ticker)
		return nil
	})
	g.Go(func() error {
		overview.News = a.CompanyNews(gctx, ticker)
		return nil
	})
	g.Go(func() error {
		summary := a.Sentiment(gctx, ticker)
		overview.Sentiment = &summary
		return nil
	})
	g.Go(func() error {
		record := a.Metrics(gctx, ticker)
		overview.Metrics = &record
		return nil
	})
	_ = g.Wait()

	return overview
}
