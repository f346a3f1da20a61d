package datasource

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/Satvik-jain/Market-pulse/internal/sentiment"
	"github.com/Satvik-jain/Market-pulse/pkg/models"
	"github.com/Satvik-jain/Market-pulse/pkg/utils"
)

// The normalizer maps each provider's native record shape into the
// canonical output shapes. One adapter per provider; nothing downstream
// ever sees an ad-hoc map.

// priceBarsFromAlphaVantage converts the stringly-typed AV daily map into
// an ascending, 2-dp-rounded series.
func priceBarsFromAlphaVantage(resp *avDailyResponse) []models.PriceBar {
	if resp == nil || len(resp.TimeSeries) == 0 {
		return nil
	}

	bars := make([]models.PriceBar, 0, len(resp.TimeSeries))
	for date, raw := range resp.TimeSeries {
		open, err1 := strconv.ParseFloat(raw.Open, 64)
		high, err2 := strconv.ParseFloat(raw.High, 64)
		low, err3 := strconv.ParseFloat(raw.Low, 64)
		cls, err4 := strconv.ParseFloat(raw.Close, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		volume, _ := strconv.ParseInt(raw.Volume, 10, 64)
		if volume < 0 {
			volume = 0
		}
		bars = append(bars, models.PriceBar{
			Date:   date,
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(cls),
			Volume: volume,
		})
	}

	sortBarsByDate(bars)
	return bars
}

// priceBarsFromYahooChart converts the v8 chart arrays into the canonical
// series. Bars with missing quote values are skipped.
func priceBarsFromYahooChart(result *yhChartResult) []models.PriceBar {
	if result == nil || len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			break
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		bar := models.PriceBar{
			Date:  utils.FormatDate(time.Unix(ts, 0).UTC()),
			Open:  round2(*q.Open[i]),
			High:  round2(*q.High[i]),
			Low:   round2(*q.Low[i]),
			Close: round2(*q.Close[i]),
		}
		if i < len(q.Volume) && q.Volume[i] != nil && *q.Volume[i] > 0 {
			bar.Volume = *q.Volume[i]
		}
		// Intraday timestamps can collapse onto an existing calendar day.
		if n := len(bars); n > 0 && bars[n-1].Date == bar.Date {
			bars[n-1] = bar
			continue
		}
		bars = append(bars, bar)
	}

	sortBarsByDate(bars)
	return bars
}

// articlesFromNewsAPI scores and converts NewsAPI articles, dropping any
// item missing its required fields.
func articlesFromNewsAPI(resp *naEverythingResponse, score func(string) float64) []models.NewsArticle {
	if resp == nil {
		return nil
	}

	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if strings.TrimSpace(a.Title) == "" || a.PublishedAt == "" {
			continue
		}
		text := a.Title
		if a.Description != "" {
			text += " " + a.Description
		}
		polarity := score(text)
		articles = append(articles, models.NewsArticle{
			Title:          a.Title,
			Source:         a.Source.Name,
			URL:            orLinkSentinel(a.URL),
			PublishedAt:    a.PublishedAt,
			Sentiment:      polarity,
			SentimentLabel: sentiment.Label(polarity),
		})
	}
	return articles
}

// articlesFromRSS scores and converts gofeed items from the Yahoo headline
// feed. HTML in descriptions is stripped before scoring.
func articlesFromRSS(items []*gofeed.Item, sourceName string, score func(string) float64) []models.NewsArticle {
	articles := make([]models.NewsArticle, 0, len(items))
	for _, item := range items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		text := item.Title
		if desc := cleanHTML(item.Description); desc != "" {
			text += " " + desc
		}
		polarity := score(text)

		publishedAt := ""
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		articles = append(articles, models.NewsArticle{
			Title:          item.Title,
			Source:         sourceName,
			URL:            orLinkSentinel(item.Link),
			PublishedAt:    publishedAt,
			Sentiment:      polarity,
			SentimentLabel: sentiment.Label(polarity),
		})
	}
	return articles
}

// metricsFromYahooInfo converts a quoteSummary record into display
// strings. Every missing field degrades to its own "N/A" rather than
// failing the record.
func metricsFromYahooInfo(info *yhInfoResult) *models.MetricsRecord {
	if info == nil {
		return nil
	}

	return &models.MetricsRecord{
		Sector:    orNA(info.SummaryProfile.Sector),
		Exchange:  orNA(info.Price.ExchangeName),
		PE:        utils.FormatRatio(info.SummaryDetail.TrailingPE.Raw),
		MarketCap: utils.FormatMarketCap(info.Price.MarketCap.Raw),
		YearHigh:  utils.FormatPrice(info.SummaryDetail.FiftyTwoWeekHigh.Raw),
		YearLow:   utils.FormatPrice(info.SummaryDetail.FiftyTwoWeekLow.Raw),
		AvgVolume: utils.FormatVolume(info.SummaryDetail.AverageVolume.Raw),
		Dividend: utils.FormatDividend(
			info.SummaryDetail.TrailingAnnualDividendRate.Raw,
			info.SummaryDetail.TrailingAnnualDividendYield.Raw,
		),
		Beta: utils.FormatRatio(info.SummaryDetail.Beta.Raw),
		EPS:  utils.FormatPrice(info.DefaultKeyStatistics.TrailingEPS.Raw),
	}
}

// --- Helpers ---

func sortBarsByDate(bars []models.PriceBar) {
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date < bars[j].Date
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return utils.NA
	}
	return s
}

func orLinkSentinel(link string) string {
	if strings.TrimSpace(link) == "" {
		return "#"
	}
	return link
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
