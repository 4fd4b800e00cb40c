package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/news-digest/app/article"
)

var _ ArticleStore = (*ArticleRepository)(nil)

// ArticleRepository handles database operations for archived articles
type ArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// UpsertArticles stores the articles in one transaction. Rows are keyed by
// URL and publication date; existing rows keep their id and creation time.
func (r *ArticleRepository) UpsertArticles(articles []*article.Article) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (
			id, url, title, source_name, published_at, content,
			summary, summary_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url, published_at) DO UPDATE SET
			title = excluded.title,
			source_name = excluded.source_name,
			content = excluded.content,
			summary = excluded.summary,
			summary_status = excluded.summary_status,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	for _, a := range articles {
		var summary *string
		if a.Summary != nil {
			text := a.Summary.Text
			summary = &text
		}

		_, err := stmt.Exec(
			uuid.NewString(), a.URL, a.Title, a.SourceName,
			article.FormatPublishedAt(a.PublishedAt.UTC()), a.Content,
			summary, summaryStatus(a), now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to store article %q: %w", a.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(articles), nil
}

// GetArticles returns the newest archived articles first. A non-positive
// limit returns every row.
func (r *ArticleRepository) GetArticles(limit int) ([]ArchivedArticle, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(`
		SELECT id, url, title, source_name, published_at, content,
		       summary, summary_status, created_at, updated_at
		FROM articles
		ORDER BY published_at DESC, created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	var articles []ArchivedArticle
	for rows.Next() {
		var (
			a                               ArchivedArticle
			publishedAt, createdAt, updated string
			content, summary                sql.NullString
		)

		err := rows.Scan(
			&a.ID, &a.URL, &a.Title, &a.SourceName, &publishedAt, &content,
			&summary, &a.SummaryStatus, &createdAt, &updated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		if a.PublishedAt, err = article.ParsePublishedAt(publishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse publication date of %s: %w", a.ID, err)
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		a.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

		if content.Valid {
			a.Content = &content.String
		}
		if summary.Valid {
			a.Summary = &summary.String
		}

		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// GetSummaryStats counts archived articles per summary status.
func (r *ArticleRepository) GetSummaryStats() (*SummaryStats, error) {
	rows, err := r.db.Query(`
		SELECT summary_status, COUNT(*)
		FROM articles
		GROUP BY summary_status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}
	defer rows.Close()

	stats := &SummaryStats{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan summary stats: %w", err)
		}

		switch status {
		case StatusOK:
			stats.OK = count
		case StatusError:
			stats.Error = count
		default:
			stats.Pending += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary stats: %w", err)
	}

	return stats, nil
}
