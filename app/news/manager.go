package news

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/cfg"
	"github.com/lysyi3m/news-digest/app/metrics"
	"github.com/lysyi3m/news-digest/app/summary"
)

const DefaultBaseURL = "https://newsapi.org/v2/everything"

var (
	ErrMissingQuery = errors.New("query parameter 'q' is required")
	ErrSearchFailed = errors.New("news search request failed")
	ErrNoSummarizer = errors.New("no summarizer configured")
	ErrNoArchive    = errors.New("archive is not configured")
	ErrNotArray     = errors.New("articles file does not hold a JSON array")
)

// Summarizer stores a summary on an article.
type Summarizer interface {
	Summarize(ctx context.Context, a *article.Article) error
}

var _ Summarizer = (*summary.Client)(nil)

// Manager owns the ordered article collection.
type Manager struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	userAgent  string
	summarizer Summarizer

	mu       sync.RWMutex
	articles []*article.Article
}

type Stats struct {
	Total      int            `json:"total"`
	Summarized int            `json:"summarized"`
	Failed     int            `json:"failed"`
	Pending    int            `json:"pending"`
	Sources    map[string]int `json:"sources"`
}

func NewManager(config *cfg.Cfg, httpClient *http.Client, summarizer Summarizer) *Manager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Manager{
		apiKey:     config.NewsAPIKey,
		baseURL:    cmp.Or(config.NewsAPIURL, DefaultBaseURL),
		httpClient: httpClient,
		userAgent:  config.UserAgent,
		summarizer: summarizer,
		articles:   []*article.Article{},
	}
}

// Articles returns a copy of the collection slice. The records are shared.
func (m *Manager) Articles() []*article.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()

	articles := make([]*article.Article, len(m.articles))
	copy(articles, m.articles)
	return articles
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.articles)
}

func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{
		Total:   len(m.articles),
		Sources: make(map[string]int),
	}

	for _, a := range m.articles {
		stats.Sources[a.SourceName]++
		switch {
		case a.Summary == nil:
			stats.Pending++
		case a.Summary.IsError():
			stats.Failed++
		default:
			stats.Summarized++
		}
	}

	return stats
}

func (m *Manager) appendArticles(articles []*article.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.articles = append(m.articles, articles...)
	metrics.CollectionSize.Set(float64(len(m.articles)))
}

func (m *Manager) replaceArticles(articles []*article.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.articles = articles
	metrics.CollectionSize.Set(float64(len(m.articles)))
}
