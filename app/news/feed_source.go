package news

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/metrics"
)

const feedSource = "feed"

// FetchFeed adds the items of an RSS or Atom feed to the collection. Items
// without any usable date are skipped.
func (m *Manager) FetchFeed(ctx context.Context, feedURL string) ([]*article.Article, error) {
	data, err := m.fetchFeed(ctx, feedURL)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(feedSource).Inc()
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(feedSource).Inc()
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	sourceName := cmp.Or(strings.TrimSpace(feed.Title), article.UnknownSource)
	articles := make([]*article.Article, 0, len(feed.Items))

	for _, item := range feed.Items {
		publishedAt, ok := itemDate(item, feed)
		if !ok {
			slog.Warn("Skipping feed item without date", "feed", feedURL, "link", item.Link)
			continue
		}

		a := article.New(strings.TrimSpace(item.Title), item.Link, sourceName, publishedAt, itemContent(item))
		a.Language = feed.Language
		articles = append(articles, a)
	}

	m.appendArticles(articles)
	metrics.ArticlesFetchedTotal.WithLabelValues(feedSource).Add(float64(len(articles)))

	slog.Info("Fetched feed", "feed", feedURL, "title", feed.Title, "count", len(articles))

	return articles, nil
}

func (m *Manager) fetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if m.userAgent != "" {
		req.Header.Set("User-Agent", m.userAgent)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func itemDate(item *gofeed.Item, feed *gofeed.Feed) (time.Time, bool) {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC(), true
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC(), true
	case feed.PublishedParsed != nil:
		return feed.PublishedParsed.UTC(), true
	}
	return time.Time{}, false
}

// itemContent prefers the full content and falls back to the description,
// both reduced to plain text.
func itemContent(item *gofeed.Item) *string {
	for _, raw := range []string{item.Content, item.Description} {
		if text := htmlToText(raw); text != "" {
			return &text
		}
	}
	return nil
}

func htmlToText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
