// Package metrics holds the Prometheus collectors of the digest pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArticlesFetchedTotal counts records added to the collection.
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Name:      "articles_fetched_total",
			Help:      "Total number of articles added to the collection",
		},
		[]string{"source"},
	)

	// FetchErrorsTotal counts failed search or feed requests.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Name:      "fetch_errors_total",
			Help:      "Total number of failed article fetches",
		},
		[]string{"source"},
	)

	// SummariesTotal counts summarization attempts by outcome.
	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Name:      "summaries_total",
			Help:      "Total number of summarization attempts",
		},
		[]string{"status"},
	)

	// CollectionSize tracks the number of articles held in memory.
	CollectionSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "newsdigest",
			Name:      "collection_size",
			Help:      "Number of articles in the collection",
		},
	)
)
