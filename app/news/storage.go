package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/lysyi3m/news-digest/app/article"
)

// SaveToFile writes the collection as an indented JSON array. Non-ASCII text
// and HTML characters are written literally.
func (m *Manager) SaveToFile(path string) error {
	articles := m.Articles()

	records := make([]article.Record, 0, len(articles))
	for _, a := range articles {
		records = append(records, a.ToRecord())
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(records); err != nil {
		slog.Error("Failed to encode articles", "path", path, "error", err)
		return fmt.Errorf("failed to encode articles: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		slog.Error("Failed to save articles", "path", path, "error", err)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Info("Saved articles", "path", path, "count", len(records))
	return nil
}

// LoadFromFile replaces the collection with the records stored at path. The
// current collection is kept when any record fails to decode.
func (m *Manager) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read articles file", "path", path, "error", err)
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []article.Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("Failed to decode articles file", "path", path, "error", err)
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// null decodes without error but leaves the slice nil
	if records == nil {
		slog.Error("Failed to decode articles file", "path", path, "error", ErrNotArray)
		return fmt.Errorf("failed to decode %s: %w", path, ErrNotArray)
	}

	articles := make([]*article.Article, 0, len(records))
	for i, r := range records {
		a, err := article.FromRecord(r)
		if err != nil {
			slog.Error("Failed to decode article", "path", path, "index", i, "error", err)
			return fmt.Errorf("failed to decode article %d: %w", i, err)
		}
		articles = append(articles, a)
	}

	m.replaceArticles(articles)

	slog.Info("Loaded articles", "path", path, "count", len(articles))
	return nil
}
