package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/metrics"
)

const newsAPISource = "newsapi"

type searchResponse struct {
	Status       string          `json:"status"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	TotalResults int             `json:"totalResults"`
	Articles     []searchArticle `json:"articles"`
}

type searchArticle struct {
	Source struct {
		Name *string `json:"name"`
	} `json:"source"`
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	PublishedAt *string `json:"publishedAt"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

// FetchArticles runs one search request and appends the results to the
// collection. On any request failure the collection is left untouched.
func (m *Manager) FetchArticles(ctx context.Context, params url.Values) ([]*article.Article, error) {
	if params.Get("q") == "" {
		return nil, ErrMissingQuery
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	query.Set("apiKey", m.apiKey)

	resp, err := m.search(ctx, query)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(newsAPISource).Inc()
		slog.Error("Failed to fetch articles", "query", params.Get("q"), "error", err)
		return nil, err
	}

	language := params.Get("language")
	articles := make([]*article.Article, 0, len(resp.Articles))

	for i, item := range resp.Articles {
		publishedAt, err := article.ParsePublishedAt(deref(item.PublishedAt))
		if err != nil {
			slog.Warn("Skipping article with invalid publication date", "index", i, "url", deref(item.URL), "error", err)
			continue
		}

		content := item.Content
		if content == nil {
			content = item.Description
		}

		a := article.New(deref(item.Title), deref(item.URL), deref(item.Source.Name), publishedAt, content)
		a.Language = language
		articles = append(articles, a)
	}

	m.appendArticles(articles)
	metrics.ArticlesFetchedTotal.WithLabelValues(newsAPISource).Add(float64(len(articles)))

	slog.Info("Fetched articles", "query", params.Get("q"), "count", len(articles), "total_results", resp.TotalResults)

	return articles, nil
}

func (m *Manager) search(ctx context.Context, query url.Values) (*searchResponse, error) {
	endpoint, err := url.Parse(m.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search URL: %w", err)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if m.userAgent != "" {
		req.Header.Set("User-Agent", m.userAgent)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result searchResponse
	decodeErr := json.Unmarshal(data, &result)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && result.Message != "" {
			return nil, fmt.Errorf("%w: HTTP %d: %s", ErrSearchFailed, resp.StatusCode, result.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrSearchFailed, resp.StatusCode)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", decodeErr)
	}

	if result.Status == "error" {
		return nil, fmt.Errorf("%w: %s: %s", ErrSearchFailed, result.Code, result.Message)
	}

	return &result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
