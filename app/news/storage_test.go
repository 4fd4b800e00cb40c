package news

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/news-digest/app/article"
)

func TestSaveToFileEmpty(t *testing.T) {
	manager := newTestManager("http://unused", nil)
	path := filepath.Join(t.TempDir(), "articles.json")

	if err := manager.SaveToFile(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty array, got: %s", data)
	}
}

func TestSaveToFileFormat(t *testing.T) {
	manager := newTestManager("http://unused", nil)
	a := article.New("Inteligência <IA>", "https://x.com/a?b=1&c=2", "X News",
		time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), article.StringPtr("body"))
	manager.appendArticles([]*article.Article{a})

	path := filepath.Join(t.TempDir(), "articles.json")
	if err := manager.SaveToFile(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	content := string(data)

	expected := []string{
		"[\n  {\n    \"title\": \"Inteligência <IA>\"",
		"\"url\": \"https://x.com/a?b=1&c=2\"",
		"\"publication_date\": \"2025-01-05T10:00:00+00:00\"",
		"\"content\": \"body\"",
		"\"ai_summary\": null",
	}
	for _, s := range expected {
		if !strings.Contains(content, s) {
			t.Errorf("Expected saved file to contain %q, got:\n%s", s, content)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	manager := newTestManager("http://unused", nil)

	ok := article.New("one", "https://a/1", "A", time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), article.StringPtr("c"))
	ok.Summary = article.SummaryOf("Resumo em português.")
	failed := article.New("two", "https://a/2", "B", time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), nil)
	failed.Summary = article.GenerateFailure(errors.New("quota exceeded"))
	pending := article.New("three", "https://a/3", "C", time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC), nil)
	manager.appendArticles([]*article.Article{ok, failed, pending})

	path := filepath.Join(t.TempDir(), "articles.json")
	if err := manager.SaveToFile(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	loaded := newTestManager("http://unused", nil)
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	articles := loaded.Articles()
	if len(articles) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(articles))
	}
	if articles[0].SummaryText() != "Resumo em português." || articles[0].Summary.IsError() {
		t.Errorf("Unexpected first summary: %+v", articles[0].Summary)
	}
	if !articles[1].Summary.IsError() {
		t.Error("Expected second summary to be restored as an error")
	}
	if articles[2].Summary != nil || articles[2].Content != nil {
		t.Error("Expected third article to have no summary and no content")
	}
	if !articles[0].PublishedAt.Equal(ok.PublishedAt) {
		t.Errorf("Expected %v, got %v", ok.PublishedAt, articles[0].PublishedAt)
	}
}

func TestLoadFromFileEmptyArray(t *testing.T) {
	manager := newTestManager("http://unused", nil)
	seedArticles(manager, "https://a/1")

	path := filepath.Join(t.TempDir(), "articles.json")
	os.WriteFile(path, []byte("[]"), 0o644)

	if err := manager.LoadFromFile(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if manager.Len() != 0 {
		t.Errorf("Expected empty collection, got %d", manager.Len())
	}
}

func TestLoadFromFileMissingField(t *testing.T) {
	manager := newTestManager("http://unused", nil)
	seedArticles(manager, "https://a/1", "https://a/2")

	path := filepath.Join(t.TempDir(), "articles.json")
	data := `[
  {"title":"ok","url":"https://b/1","source_name":"B","publication_date":"2025-01-05T10:00:00+00:00","content":null,"ai_summary":null},
  {"title":"broken","url":"https://b/2","source_name":"B","content":null}
]`
	os.WriteFile(path, []byte(data), 0o644)

	err := manager.LoadFromFile(path)
	if !errors.Is(err, article.ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got: %v", err)
	}
	if manager.Len() != 2 || manager.Articles()[0].URL != "https://a/1" {
		t.Error("Expected previous collection to be kept")
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	manager := newTestManager("http://unused", nil)
	seedArticles(manager, "https://a/1")

	path := filepath.Join(t.TempDir(), "articles.json")
	os.WriteFile(path, []byte("{not json"), 0o644)

	if err := manager.LoadFromFile(path); err == nil {
		t.Error("Expected error for malformed file")
	}
	if manager.Len() != 1 {
		t.Errorf("Expected previous collection to be kept, got %d", manager.Len())
	}
}

func TestLoadFromFileNull(t *testing.T) {
	manager := newTestManager("http://unused", nil)
	seedArticles(manager, "https://a/1")

	path := filepath.Join(t.TempDir(), "articles.json")
	os.WriteFile(path, []byte("null"), 0o644)

	err := manager.LoadFromFile(path)
	if !errors.Is(err, ErrNotArray) {
		t.Errorf("Expected ErrNotArray, got: %v", err)
	}
	if manager.Len() != 1 {
		t.Errorf("Expected previous collection to be kept, got %d", manager.Len())
	}
}

func TestLoadFromFileEmptySummaryIsRetried(t *testing.T) {
	summarizer := &fakeSummarizer{}
	manager := newTestManager("http://unused", summarizer)

	path := filepath.Join(t.TempDir(), "articles.json")
	data := `[{"title":"t","url":"https://b/1","source_name":"B","publication_date":"2025-01-05T10:00:00+00:00","content":null,"ai_summary":""}]`
	os.WriteFile(path, []byte(data), 0o644)

	if err := manager.LoadFromFile(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	report := manager.BatchSummarize(context.Background(), 0)
	if summarizer.calls != 1 || report.Skipped != 0 {
		t.Errorf("Expected the article to be summarized, got %d calls, report %+v", summarizer.calls, report)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	manager := newTestManager("http://unused", nil)

	err := manager.LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got: %v", err)
	}
}

func TestSaveToFileUnwritable(t *testing.T) {
	manager := newTestManager("http://unused", nil)

	path := filepath.Join(t.TempDir(), "missing-dir", "articles.json")
	if err := manager.SaveToFile(path); err == nil {
		t.Error("Expected error for missing directory")
	}
}
