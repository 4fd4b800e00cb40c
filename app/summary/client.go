package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/metrics"
)

var ErrNoURL = errors.New("no URL available to fetch content")

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	httpClient *http.Client
	generator  Generator
	extractor  *Extractor
	userAgent  string
}

// NewClient returns a summarizer. When extractContent is set the fetched page
// is reduced with readability before it is embedded in the prompt.
func NewClient(httpClient *http.Client, generator Generator, userAgent string, extractContent bool) *Client {
	client := &Client{
		httpClient: httpClient,
		generator:  generator,
		userAgent:  userAgent,
	}

	if extractContent {
		client.extractor = NewExtractor()
	}

	return client
}

// Summarize stores a summary on a. Only an empty URL is returned as an error;
// fetch and generation failures are recorded on the article instead.
func (c *Client) Summarize(ctx context.Context, a *article.Article) error {
	if a.URL == "" {
		return ErrNoURL
	}

	body, err := c.fetchArticleContent(ctx, a.URL)
	if err != nil {
		slog.Warn("Failed to fetch article content", "url", a.URL, "error", err)
		a.Summary = article.FetchFailure(err)
		metrics.SummariesTotal.WithLabelValues("fetch_error").Inc()
		return nil
	}

	content := string(body)
	if c.extractor != nil {
		if extracted, err := c.extractor.Run(body, a.URL); err == nil {
			content = extracted
		} else {
			slog.Debug("Content extraction failed, using raw page", "url", a.URL, "error", err)
		}
	}

	prompt := BuildPrompt(a.Title, a.URL, content, a.Language)

	text, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("Failed to generate summary", "url", a.URL, "error", err)
		a.Summary = article.GenerateFailure(err)
		metrics.SummariesTotal.WithLabelValues("generate_error").Inc()
		return nil
	}

	a.Summary = article.SummaryOf(text)
	metrics.SummariesTotal.WithLabelValues("ok").Inc()

	slog.Debug("Summary generated", "url", a.URL, "summary_length", len(text))
	return nil
}

func (c *Client) fetchArticleContent(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
