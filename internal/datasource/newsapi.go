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

// DefaultNewsAPIURL is the production NewsAPI endpoint.
const DefaultNewsAPIURL = "https://newsapi.org"

// NewsAPI is the primary company news provider. Queries go by company name
// rather than ticker, matching how articles are written.
type NewsAPI struct {
	BaseURL string
	apiKey  string
	limiter *RateLimiter
}

// NewNewsAPI creates a NewsAPI client.
func NewNewsAPI(apiKey string) *NewsAPI {
	return &NewsAPI{
		BaseURL: DefaultNewsAPIURL,
		apiKey:  apiKey,
		limiter: NewRateLimiter(2, time.Second),
	}
}

// Name returns the provider name.
func (n *NewsAPI) Name() string { return "NewsAPI" }

// --- NewsAPI native response types ---

type naEverythingResponse struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Articles []naArticle `json:"articles"`
}

type naArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// CompanyNews fetches up to pageSize recent articles mentioning the
// company behind the ticker.
func (n *NewsAPI) CompanyNews(ctx context.Context, ticker string, pageSize int) (*naEverythingResponse, error) {
	query := utils.CompanyName(ticker)

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v2/everything?q=%s&pageSize=%d&sortBy=publishedAt&apiKey=%s",
		n.BaseURL, url.QueryEscape(query), pageSize, url.QueryEscape(n.apiKey))

	body, _, err := doGet(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("newsapi everything %q: %w", query, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp naEverythingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse newsapi response: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", resp.Message)
	}

	return &resp, nil
}
