package cfg

import (
	"errors"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.NewsAPIKey != "news-key" {
		t.Errorf("Expected news key from environment, got '%s'", cfg.NewsAPIKey)
	}
	if cfg.Query != "tech" {
		t.Errorf("Expected default query 'tech', got '%s'", cfg.Query)
	}
	if cfg.PageSize != 5 {
		t.Errorf("Expected page size 5, got %d", cfg.PageSize)
	}
	if cfg.Delay != time.Second {
		t.Errorf("Expected delay 1s, got %v", cfg.Delay)
	}
	if cfg.Output != "articles.json" {
		t.Errorf("Expected output 'articles.json', got '%s'", cfg.Output)
	}
	if cfg.NewsAPIURL != "https://newsapi.org/v2/everything" {
		t.Errorf("Unexpected search endpoint: %s", cfg.NewsAPIURL)
	}
	if cfg.Model != "gemini-1.5-flash" {
		t.Errorf("Unexpected model: %s", cfg.Model)
	}
}

func TestLoadFlags(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key")

	cfg, err := Load([]string{
		"-q", "inteligência artificial",
		"--page-size", "10",
		"--language", "pt",
		"--domains", "tecmundo.com.br",
		"--delay", "250ms",
		"--feed-url", "https://example.com/a.xml",
		"--feed-url", "https://example.com/b.xml",
		"-o", "out.json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Query != "inteligência artificial" {
		t.Errorf("Unexpected query: %s", cfg.Query)
	}
	if cfg.PageSize != 10 {
		t.Errorf("Expected page size 10, got %d", cfg.PageSize)
	}
	if cfg.Language != "pt" || cfg.Domains != "tecmundo.com.br" {
		t.Errorf("Unexpected filters: %s %s", cfg.Language, cfg.Domains)
	}
	if cfg.Delay != 250*time.Millisecond {
		t.Errorf("Expected delay 250ms, got %v", cfg.Delay)
	}
	if len(cfg.FeedURLs) != 2 {
		t.Errorf("Expected 2 feed URLs, got %d", len(cfg.FeedURLs))
	}
	if cfg.Output != "out.json" {
		t.Errorf("Expected output 'out.json', got '%s'", cfg.Output)
	}
}

func TestLoadRequiresNewsAPIKey(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "")

	_, err := Load([]string{})
	if !errors.Is(err, ErrMissingNewsAPIKey) {
		t.Errorf("Expected ErrMissingNewsAPIKey, got: %v", err)
	}

	cfg, err := Load([]string{"--serve"})
	if err != nil {
		t.Fatalf("Expected serve mode to start without a news key, got: %v", err)
	}
	if !cfg.Serve {
		t.Error("Expected serve mode to be enabled")
	}
}

func TestValidatePageSize(t *testing.T) {
	cfg := &Cfg{NewsAPIKey: "k", PageSize: 0, Output: "a.json"}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for page size 0")
	}

	cfg.PageSize = 101
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for page size 101")
	}

	cfg.PageSize = 100
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected page size 100 to be valid, got: %v", err)
	}
}
