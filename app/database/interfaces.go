package database

import "github.com/lysyi3m/news-digest/app/article"

type ArticleStore interface {
	UpsertArticles(articles []*article.Article) (int, error)
	GetArticles(limit int) ([]ArchivedArticle, error)
	GetArticleCount() (int, error)
	GetSummaryStats() (*SummaryStats, error)
}
