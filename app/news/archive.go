package news

import (
	"fmt"
	"log/slog"

	"github.com/lysyi3m/news-digest/app/article"
)

// Archiver persists articles outside the JSON file.
type Archiver interface {
	UpsertArticles(articles []*article.Article) (int, error)
}

// Archive writes the whole collection to repo and returns the number of rows
// written.
func (m *Manager) Archive(repo Archiver) (int, error) {
	if repo == nil {
		return 0, ErrNoArchive
	}

	count, err := repo.UpsertArticles(m.Articles())
	if err != nil {
		return 0, fmt.Errorf("failed to archive articles: %w", err)
	}

	slog.Info("Archived articles", "count", count)
	return count, nil
}
