package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/cfg"
	"github.com/lysyi3m/news-digest/app/database"
)

const defaultArchiveLimit = 50

// NewHandler builds the HTTP handlers. archive may be nil.
func NewHandler(config *cfg.Cfg, collection Collection, archive database.ArticleStore) *Handler {
	return &Handler{
		config:     config,
		collection: collection,
		archive:    archive,
		generator:  NewGenerator(),
	}
}

func (h *Handler) GetArticles(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles := filterBySource(h.collection.Articles(), c.Query("source"))
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	records := make([]article.Record, 0, len(articles))
	for _, a := range articles {
		records = append(records, a.ToRecord())
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetFeed(c *gin.Context) {
	articles := filterBySource(h.collection.Articles(), c.Query("source"))

	rss, err := h.generator.Run(h.channel(), articles)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(articles)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetArchive(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archive is not configured"})
		return
	}

	limit, err := parseLimit(c.Query("limit"), defaultArchiveLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.archive.GetArticles(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if articles == nil {
		articles = []database.ArchivedArticle{}
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    len(articles),
	})
}

// GetArchiveFeed renders the newest archived articles as RSS.
func (h *Handler) GetArchiveFeed(c *gin.Context) {
	if h.archive == nil {
		c.Status(http.StatusNotFound)
		return
	}

	limit, err := parseLimit(c.Query("limit"), defaultArchiveLimit)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	archived, err := h.archive.GetArticles(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_articles", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	articles := make([]*article.Article, 0, len(archived))
	for _, a := range archived {
		articles = append(articles, a.ToArticle())
	}

	channel := h.channel()
	channel.Title = "News Digest Archive"
	channel.SelfLink = channel.Link + "/archive/feed.xml"

	rss, err := h.generator.Run(channel, articles)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(articles)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"articles":  h.collection.Len(),
	}

	if h.archive != nil {
		if count, err := h.archive.GetArticleCount(); err == nil {
			health["archived_articles"] = count
		} else {
			slog.Error("Database error", "operation", "get_article_count", "error", err)
			health["status"] = "degraded"
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"collection": h.collection.Stats(),
	}

	if h.archive != nil {
		if summaryStats, err := h.archive.GetSummaryStats(); err == nil {
			stats["archive"] = summaryStats
		} else {
			slog.Error("Database error", "operation", "get_summary_stats", "error", err)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) channel() Channel {
	baseURL := fmt.Sprintf("http://localhost:%s", h.config.Port)

	return Channel{
		Title:       "News Digest",
		Link:        baseURL,
		Description: fmt.Sprintf("News articles for \"%s\" with AI summaries", h.config.Query),
		SelfLink:    baseURL + "/feed.xml",
		Version:     h.config.Version,
	}
}

func parseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid limit: %s", raw)
	}
	return limit, nil
}

func filterBySource(articles []*article.Article, source string) []*article.Article {
	if source == "" {
		return articles
	}

	filtered := make([]*article.Article, 0, len(articles))
	for _, a := range articles {
		if strings.EqualFold(a.SourceName, source) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
