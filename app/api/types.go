package api

import (
	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/cfg"
	"github.com/lysyi3m/news-digest/app/database"
	"github.com/lysyi3m/news-digest/app/news"
)

// Collection is the read side of the collection manager.
type Collection interface {
	Articles() []*article.Article
	Len() int
	Stats() news.Stats
}

var _ Collection = (*news.Manager)(nil)

type GeneratorInterface interface {
	Run(channel Channel, articles []*article.Article) (string, error)
}

var _ GeneratorInterface = (*Generator)(nil)

// Channel describes the RSS channel wrapping the collection.
type Channel struct {
	Title       string
	Link        string
	Description string
	SelfLink    string
	Version     string
}

type Handler struct {
	config     *cfg.Cfg
	collection Collection
	archive    database.ArticleStore // nil when no archive is configured
	generator  GeneratorInterface
}
