// Package telemetry exposes Prometheus metrics for the connector's
// ingest and scrape pipelines.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all connector Prometheus metrics.
type Metrics struct {
	// Ingest metrics
	FeedsFetched  prometheus.Counter
	FeedsSkipped  *prometheus.CounterVec
	NoticesKept   prometheus.Counter
	IngestNoMatch prometheus.Counter

	// Scrape metrics
	ScrapeOutcomes *prometheus.CounterVec
	ScrapeDuration prometheus.Histogram
}

// Provider wraps the metrics and their registry.
type Provider struct {
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider initializes all metrics on a fresh registry. Using a
// dedicated registry keeps repeated initialization (tests, CLI commands)
// from colliding on the global default.
func NewProvider() *Provider {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		FeedsFetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "placsp_feeds_fetched_total",
			Help: "Total syndication documents fetched and parsed",
		}),
		FeedsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "placsp_feeds_skipped_total",
			Help: "Total feed sources skipped, by reason (fetch, not_feed, parse)",
		}, []string{"reason"}),
		NoticesKept: factory.NewCounter(prometheus.CounterOpts{
			Name: "placsp_notices_kept_total",
			Help: "Total notices that passed the region filter",
		}),
		IngestNoMatch: factory.NewCounter(prometheus.CounterOpts{
			Name: "placsp_ingest_no_match_total",
			Help: "Total ingest calls that produced zero notices",
		}),
		ScrapeOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "placsp_scrape_outcomes_total",
			Help: "Total detail-worker invocations, by outcome",
		}, []string{"outcome"}),
		ScrapeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "placsp_scrape_duration_seconds",
			Help:    "Wall-clock duration of one detail-worker invocation",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 60, 90},
		}),
	}

	return &Provider{Metrics: m, registry: registry}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
