package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Cache.TTL != 300 {
		t.Errorf("cache.ttl = %d, want 300", cfg.Cache.TTL)
	}
	if cfg.Cache.CleanupInterval != 3600 {
		t.Errorf("cache.cleanup_interval = %d, want 3600", cfg.Cache.CleanupInterval)
	}
	if cfg.Synthetic.HistoryDays != 365 {
		t.Errorf("synthetic.history_days = %d, want 365", cfg.Synthetic.HistoryDays)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api.port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
providers:
  alphavantage_key: file-av-key
cache:
  ttl: 60
api:
  port: 9090
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Providers.AlphaVantageKey != "file-av-key" {
		t.Errorf("alphavantage_key = %q", cfg.Providers.AlphaVantageKey)
	}
	if cfg.Cache.TTL != 60 {
		t.Errorf("cache.ttl = %d, want 60", cfg.Cache.TTL)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("api.port = %d, want 9090", cfg.API.Port)
	}
	// Unset sections keep their defaults.
	if cfg.Cache.CleanupInterval != 3600 {
		t.Errorf("cache.cleanup_interval = %d, want default 3600", cfg.Cache.CleanupInterval)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MARKETPULSE_PROVIDERS_NEWSAPI_KEY", "env-news-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Providers.NewsAPIKey != "env-news-key" {
		t.Errorf("newsapi_key = %q, want env-news-key", cfg.Providers.NewsAPIKey)
	}
}

func TestCheckAPIKeys(t *testing.T) {
	cfg := &Config{}
	cfg.Providers.AlphaVantageKey = "verylongsecretkey123"

	statuses := CheckAPIKeys(cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 key statuses, got %d", len(statuses))
	}

	av := statuses[0]
	if !av.IsSet || av.Source != KeySourceConfig {
		t.Errorf("alpha vantage status = %+v", av)
	}
	if av.Masked != "ver...123" {
		t.Errorf("masked = %q", av.Masked)
	}

	news := statuses[1]
	if news.IsSet || news.Source != KeySourceNone {
		t.Errorf("newsapi status = %+v", news)
	}
}

func TestMaskKeyShort(t *testing.T) {
	if got := maskKey("short"); got != "***" {
		t.Errorf("maskKey(short) = %q", got)
	}
}
