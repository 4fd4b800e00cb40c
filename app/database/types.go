package database

import (
	"time"

	"github.com/lysyi3m/news-digest/app/article"
)

const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusPending = "pending"
)

// ArchivedArticle is an article row together with its bookkeeping columns.
type ArchivedArticle struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	SourceName    string    `json:"source_name"`
	PublishedAt   time.Time `json:"publication_date"`
	Content       *string   `json:"content"`
	Summary       *string   `json:"ai_summary"`
	SummaryStatus string    `json:"summary_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SummaryStats struct {
	OK      int `json:"ok"`
	Error   int `json:"error"`
	Pending int `json:"pending"`
}

// ToArticle converts the row back into a collection record.
func (a ArchivedArticle) ToArticle() *article.Article {
	restored := article.New(a.Title, a.URL, a.SourceName, a.PublishedAt, a.Content)
	if a.Summary != nil {
		restored.Summary = article.ParseSummary(*a.Summary)
	}
	return restored
}

func summaryStatus(a *article.Article) string {
	switch {
	case a.Summary == nil:
		return StatusPending
	case a.Summary.IsError():
		return StatusError
	default:
		return StatusOK
	}
}
