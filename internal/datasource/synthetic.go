package datasource

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Satvik-jain/Market-pulse/internal/sentiment"
	"github.com/Satvik-jain/Market-pulse/pkg/models"
	"github.com/Satvik-jain/Market-pulse/pkg/utils"
)

// Synthetic generates plausible stand-in data for any ticker when every
// real source is exhausted. It never fails, so chains that end with it
// always produce a payload.
type Synthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSynthetic builds a generator seeded for reproducibility. Pass 0 to
// seed from the current time.
func NewSynthetic(seed int64) *Synthetic {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Synthetic{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// basePrices anchors the random walk for well-known tickers so synthetic
// charts stay in a believable range.
var basePrices = map[string]float64{
	"AAPL":  180.0,
	"MSFT":  340.0,
	"GOOGL": 130.0,
	"AMZN":  145.0,
	"META":  310.0,
	"TSLA":  240.0,
}

// PriceSeries generates a business-day random walk covering the last
// `days` calendar days. Weekends are skipped; prices drift mildly upward
// the further the walk runs.
func (s *Synthetic) PriceSeries(ticker string, days int) []models.PriceBar {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, ok := basePrices[ticker]
	if !ok {
		base = 100.0
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	bars := make([]models.PriceBar, 0, days)
	prevClose := base
	i := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if utils.IsWeekend(day) {
			continue
		}
		open := prevClose * (1 + s.rng.NormFloat64()*0.005)
		drift := 0.0002 * float64(i)
		change := s.rng.NormFloat64()*0.02 + drift
		cls := open * (1 + change)
		high := math.Max(open, cls) * (1 + math.Abs(s.rng.NormFloat64())*0.01)
		low := math.Min(open, cls) * (1 - math.Abs(s.rng.NormFloat64())*0.01)

		open = math.Max(open, 0.1)
		cls = math.Max(cls, 0.1)
		high = math.Max(high, 0.1)
		low = math.Max(low, 0.1)

		volume := (5e6 + s.rng.NormFloat64()*1e6) * (1 + math.Abs(change)*10)
		if volume < 0 {
			volume = 0
		}

		bars = append(bars, models.PriceBar{
			Date:   utils.FormatDate(day),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(cls),
			Volume: int64(volume),
		})
		prevClose = cls
		i++
	}
	return bars
}

var headlineTemplates = []string{
	"%s announces quarterly earnings results",
	"%s stock rises on strong profit outlook",
	"Analysts upgrade %s price target after growth report",
	"%s faces regulatory scrutiny over market practices",
	"%s unveils new product line at annual event",
	"Investors weigh %s expansion into new markets",
	"%s reports record revenue for the quarter",
	"%s shares slip as costs climb",
	"Institutional buyers increase positions in %s",
	"%s board approves additional share buyback",
}

var syntheticPublishers = []string{
	"Market Watch Daily",
	"Finance Wire",
	"The Street Report",
	"Global Markets Desk",
	"Investor Journal",
}

// News generates ten templated headlines published within the last week.
func (s *Synthetic) News(ticker string) []models.NewsArticle {
	s.mu.Lock()
	defer s.mu.Unlock()

	company := utils.CompanyName(ticker)
	now := s.now().UTC()

	articles := make([]models.NewsArticle, 0, len(headlineTemplates))
	for _, tmpl := range headlineTemplates {
		polarity := s.rng.NormFloat64()*0.5 + 0.2
		if polarity > 1 {
			polarity = 1
		} else if polarity < -1 {
			polarity = -1
		}
		publishedAt := now.Add(-time.Duration(s.rng.Intn(7*24)) * time.Hour)

		articles = append(articles, models.NewsArticle{
			Title:          fmt.Sprintf(tmpl, company),
			Source:         syntheticPublishers[s.rng.Intn(len(syntheticPublishers))],
			URL:            "#",
			PublishedAt:    publishedAt.Format(time.RFC3339),
			Sentiment:      round2(polarity),
			SentimentLabel: sentiment.Label(polarity),
		})
	}
	return articles
}

// syntheticSummaries pins the sentiment summary for well-known tickers.
var syntheticSummaries = map[string]models.SentimentSummary{
	"AAPL":  {Buzz: 0.85, SentimentScore: 0.62, SectorSentiment: 0.58},
	"MSFT":  {Buzz: 0.78, SentimentScore: 0.66, SectorSentiment: 0.58},
	"GOOGL": {Buzz: 0.72, SentimentScore: 0.55, SectorSentiment: 0.58},
	"AMZN":  {Buzz: 0.80, SentimentScore: 0.59, SectorSentiment: 0.58},
	"META":  {Buzz: 0.76, SentimentScore: 0.52, SectorSentiment: 0.58},
	"TSLA":  {Buzz: 0.90, SentimentScore: 0.48, SectorSentiment: 0.58},
}

// Summary generates a sentiment summary. Known tickers get a fixed
// profile; others get sampled scores around a mildly positive center.
func (s *Synthetic) Summary(ticker string) models.SentimentSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary, ok := syntheticSummaries[ticker]; ok {
		return summary
	}
	return models.SentimentSummary{
		Buzz:            round2(0.6 + s.rng.Float64()*0.35),
		SentimentScore:  round2(0.4 + s.rng.Float64()*0.3),
		SectorSentiment: 0.58,
	}
}

// syntheticMetrics pins the fundamentals table for well-known tickers.
var syntheticMetrics = map[string]models.MetricsRecord{
	"AAPL": {
		Sector: "Technology", Exchange: "NASDAQ", PE: "29.50",
		MarketCap: "2.85T", YearHigh: "$199.62", YearLow: "$164.08",
		AvgVolume: "58.6M", Dividend: "0.96 (0.53%)", Beta: "1.28", EPS: "$6.13",
	},
	"MSFT": {
		Sector: "Technology", Exchange: "NASDAQ", PE: "35.20",
		MarketCap: "2.52T", YearHigh: "$366.78", YearLow: "$275.37",
		AvgVolume: "26.1M", Dividend: "2.72 (0.80%)", Beta: "0.89", EPS: "$9.65",
	},
	"GOOGL": {
		Sector: "Communication Services", Exchange: "NASDAQ", PE: "25.10",
		MarketCap: "1.64T", YearHigh: "$141.22", YearLow: "$101.88",
		AvgVolume: "31.5M", Dividend: utils.NA, Beta: "1.05", EPS: "$5.22",
	},
	"AMZN": {
		Sector: "Consumer Cyclical", Exchange: "NASDAQ", PE: "58.40",
		MarketCap: "1.49T", YearHigh: "$149.26", YearLow: "$118.35",
		AvgVolume: "48.9M", Dividend: utils.NA, Beta: "1.16", EPS: "$2.48",
	},
	"META": {
		Sector: "Communication Services", Exchange: "NASDAQ", PE: "27.80",
		MarketCap: "795.43B", YearHigh: "$326.20", YearLow: "$244.61",
		AvgVolume: "19.8M", Dividend: utils.NA, Beta: "1.21", EPS: "$11.16",
	},
	"TSLA": {
		Sector: "Consumer Cyclical", Exchange: "NASDAQ", PE: "70.60",
		MarketCap: "762.11B", YearHigh: "$299.29", YearLow: "$194.07",
		AvgVolume: "112.4M", Dividend: utils.NA, Beta: "2.04", EPS: "$3.40",
	},
}

// Metrics generates a fundamentals record. Known tickers get a fixed
// table; others get plausible sampled values in display form.
func (s *Synthetic) Metrics(ticker string) models.MetricsRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := syntheticMetrics[ticker]; ok {
		return record
	}

	price := 20 + s.rng.Float64()*280
	return models.MetricsRecord{
		Sector:    "Industrials",
		Exchange:  "NYSE",
		PE:        utils.FormatRatio(10 + s.rng.Float64()*40),
		MarketCap: utils.FormatMarketCap((2 + s.rng.Float64()*48) * 1e9),
		YearHigh:  utils.FormatPrice(price * (1.1 + s.rng.Float64()*0.3)),
		YearLow:   utils.FormatPrice(price * (0.6 + s.rng.Float64()*0.2)),
		AvgVolume: utils.FormatVolume((1 + s.rng.Float64()*9) * 1e6),
		Dividend:  utils.NA,
		Beta:      utils.FormatRatio(0.7 + s.rng.Float64()*0.9),
		EPS:       utils.FormatPrice(price / (15 + s.rng.Float64()*25)),
	}
}
