package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// The view is read-only
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/articles", handler.GetArticles)
	r.GET("/feed.xml", handler.GetFeed)
	r.GET("/archive", handler.GetArchive)
	r.GET("/archive/feed.xml", handler.GetArchiveFeed)

	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"articles": "/articles?source=<name>&limit=<n>",
			"feed":     "/feed.xml",
			"health":   "/health",
			"stats":    "/stats",
			"metrics":  "/metrics",
		}

		if handler.archive != nil {
			endpoints["archive"] = "/archive?limit=<n>"
			endpoints["archive_feed"] = "/archive/feed.xml"
		}

		c.JSON(200, gin.H{
			"service":     "News Digest",
			"version":     handler.config.Version,
			"description": "News articles with AI-generated summaries",
			"endpoints":   endpoints,
			"articles":    handler.collection.Len(),
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
