// Package api provides the HTTP server for Market Pulse.
//
// It exposes one endpoint per data category plus ticker validation, a
// combined overview endpoint, and the two HTML page routes.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Satvik-jain/Market-pulse/internal/config"
	"github.com/Satvik-jain/Market-pulse/internal/datasource"
	"github.com/Satvik-jain/Market-pulse/pkg/models"
	"github.com/Satvik-jain/Market-pulse/pkg/utils"
	"github.com/Satvik-jain/Market-pulse/web"
)

// DefaultTicker is served when a request carries no ticker parameter.
const DefaultTicker = "AAPL"

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	agg    *datasource.Aggregator
	cache  *datasource.ResponseCache
	tmpl   *template.Template
	log    zerolog.Logger
}

// NewServer creates a configured API server with all routes and middleware.
// Provider clients are built from the config; a missing API key just means
// that source fails fast and its chain advances.
func NewServer(cfg *config.Config, log zerolog.Logger) *Server {
	agg := datasource.NewAggregator(datasource.AggregatorConfig{
		AlphaVantage: datasource.NewAlphaVantage(cfg.Providers.AlphaVantageKey),
		Yahoo:        datasource.NewYahoo(),
		NewsAPI:      datasource.NewNewsAPI(cfg.Providers.NewsAPIKey),
		RSS:          datasource.NewYahooRSS(),
		Synthetic:    datasource.NewSynthetic(cfg.Synthetic.Seed),
		HistoryDays:  cfg.Synthetic.HistoryDays,
		Logger:       log,
	})
	cache := datasource.NewResponseCache(
		time.Duration(cfg.Cache.TTL)*time.Second,
		time.Duration(cfg.Cache.CleanupInterval)*time.Second,
	)
	return newServer(cfg, agg, cache, log)
}

// newServer wires an already-built aggregator and cache; tests use it to
// substitute httptest-backed providers.
func newServer(cfg *config.Config, agg *datasource.Aggregator, cache *datasource.ResponseCache, log zerolog.Logger) *Server {
	srv := &Server{
		cfg:   cfg,
		agg:   agg,
		cache: cache,
		tmpl:  web.Templates(),
		log:   log,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-done:
	}
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(s.recoverJSON)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Resource not found")
	})

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stock_data", s.handleStockData)
		r.Get("/company_news", s.handleCompanyNews)
		r.Get("/stock_sentiment", s.handleStockSentiment)
		r.Get("/stock_metrics", s.handleStockMetrics)
		r.Get("/validate_ticker", s.handleValidateTicker)
		r.Get("/stock_overview", s.handleStockOverview)
	})

	r.Get("/", s.handlePage("index.html"))
	r.Get("/about", s.handlePage("about.html"))

	return r
}

// recoverJSON converts handler panics into the fixed JSON 500 shape.
func (s *Server) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().Interface("panic", rec).Str("path", r.URL.Path).
					Msg("handler panicked")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ============================================================
// Response types
// ============================================================

// ErrorResponse is the fixed error body shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidateResponse is the body for /api/validate_ticker.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Ticker string `json:"ticker"`
}

// ============================================================
// Handlers
// ============================================================

// requestTicker extracts and normalizes the ticker query parameter.
func requestTicker(r *http.Request) string {
	raw := r.URL.Query().Get("ticker")
	if raw == "" {
		raw = DefaultTicker
	}
	return utils.NormalizeTicker(raw)
}

// cachedFetch serves a category from the cache, falling back to the source
// chain and caching the result. fetch is the uncached chain call.
func (s *Server) cachedFetch(ctx context.Context, category models.Category, ticker string, fetch func(context.Context, string) any) any {
	if payload, ok := s.cache.Get(category, ticker); ok {
		return payload
	}
	payload := fetch(ctx, ticker)
	s.cache.Put(category, ticker, payload)
	return payload
}

// serveCategory is the shared handler flow: sweep, validate, cache-gated
// fetch, respond with the raw payload.
func (s *Server) serveCategory(w http.ResponseWriter, r *http.Request, category models.Category, fetch func(context.Context, string) any) {
	s.cache.Sweep()

	ticker := requestTicker(r)
	if !utils.ValidateFormat(ticker) {
		writeError(w, http.StatusBadRequest, "Invalid ticker symbol format")
		return
	}

	payload := s.cachedFetch(r.Context(), category, ticker, fetch)
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleStockData(w http.ResponseWriter, r *http.Request) {
	s.serveCategory(w, r, models.CategoryPrices, func(ctx context.Context, ticker string) any {
		return s.agg.PriceHistory(ctx, ticker)
	})
}

func (s *Server) handleCompanyNews(w http.ResponseWriter, r *http.Request) {
	s.serveCategory(w, r, models.CategoryNews, func(ctx context.Context, ticker string) any {
		return s.agg.CompanyNews(ctx, ticker)
	})
}

func (s *Server) handleStockSentiment(w http.ResponseWriter, r *http.Request) {
	s.serveCategory(w, r, models.CategorySentiment, func(ctx context.Context, ticker string) any {
		return s.agg.Sentiment(ctx, ticker)
	})
}

func (s *Server) handleStockMetrics(w http.ResponseWriter, r *http.Request) {
	s.serveCategory(w, r, models.CategoryMetrics, func(ctx context.Context, ticker string) any {
		return s.agg.Metrics(ctx, ticker)
	})
}

func (s *Server) handleValidateTicker(w http.ResponseWriter, r *http.Request) {
	s.cache.Sweep()

	ticker := utils.NormalizeTicker(r.URL.Query().Get("ticker"))
	if !utils.ValidateFormat(ticker) {
		writeJSON(w, http.StatusBadRequest, ValidateResponse{Valid: false, Ticker: ticker})
		return
	}

	exists := s.agg.TickerExists(r.Context(), ticker)
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: exists, Ticker: ticker})
}

// handleStockOverview fetches all four categories concurrently, each leg
// going through the same cache-gated path as its standalone endpoint.
func (s *Server) handleStockOverview(w http.ResponseWriter, r *http.Request) {
	s.cache.Sweep()

	ticker := requestTicker(r)
	if !utils.ValidateFormat(ticker) {
		writeError(w, http.StatusBadRequest, "Invalid ticker symbol format")
		return
	}

	overview := &models.StockOverview{Ticker: ticker}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		payload := s.cachedFetch(ctx, models.CategoryPrices, ticker, func(ctx context.Context, t string) any {
			return s.agg.PriceHistory(ctx, t)
		})
		if bars, ok := payload.([]models.PriceBar); ok {
			overview.Prices = bars
		}
		return nil
	})
	g.Go(func() error {
		payload := s.cachedFetch(ctx, models.CategoryNews, ticker, func(ctx context.Context, t string) any {
			return s.agg.CompanyNews(ctx, t)
		})
		if articles, ok := payload.([]models.NewsArticle); ok {
			overview.News = articles
		}
		return nil
	})
	g.Go(func() error {
		payload := s.cachedFetch(ctx, models.CategorySentiment, ticker, func(ctx context.Context, t string) any {
			return s.agg.Sentiment(ctx, t)
		})
		if summary, ok := payload.(models.SentimentSummary); ok {
			overview.Sentiment = &summary
		}
		return nil
	})
	g.Go(func() error {
		payload := s.cachedFetch(ctx, models.CategoryMetrics, ticker, func(ctx context.Context, t string) any {
			return s.agg.Metrics(ctx, t)
		})
		if record, ok := payload.(models.MetricsRecord); ok {
			overview.Metrics = &record
		}
		return nil
	})
	_ = g.Wait()

	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": "dev",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

type pageData struct {
	Ticker string
}

func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.tmpl.ExecuteTemplate(w, name, pageData{Ticker: requestTicker(r)}); err != nil {
			s.log.Error().Err(err).Str("template", name).Msg("render failed")
		}
	}
}

// ============================================================
// JSON helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
