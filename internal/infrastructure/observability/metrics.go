// Package observability holds the Prometheus metrics for the API server.
package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	PostsCreated     prometheus.Counter
	CommentsCreated  prometheus.Counter
	VotesCast        prometheus.Counter
	KarmaAwarded     *prometheus.CounterVec
	AnalysesRun      prometheus.Counter
	SearchesRun      prometheus.Counter
	DemoFallbacks    *prometheus.CounterVec

	// Cache metrics
	TrendCacheHits   prometheus.Counter
	TrendCacheMisses prometheus.Counter
}

// NewCollector creates the metrics collector. A singleton avoids duplicate
// registration when tests construct the server more than once.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	postsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created",
	})
	commentsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created",
	})
	votesCast := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of vote requests processed",
	})
	karmaAwarded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "karma_points_total",
			Help:      "Karma points awarded, by activity type",
		},
		[]string{"activity_type"},
	)
	analysesRun := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_analyses_total",
		Help:      "Total number of content analyses run",
	})
	searchesRun := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of search requests",
	})
	demoFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demo_fallbacks_total",
			Help:      "Responses served from demo data after an upstream failure",
		},
		[]string{"operation"},
	)

	trendCacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trend_cache_hits_total",
		Help:      "Trending topic cache hits",
	})
	trendCacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trend_cache_misses_total",
		Help:      "Trending topic cache misses",
	})

	registry.MustRegister(
		httpRequests, httpDuration,
		postsCreated, commentsCreated, votesCast, karmaAwarded,
		analysesRun, searchesRun, demoFallbacks,
		trendCacheHits, trendCacheMisses,
	)

	globalCollector = &Collector{
		registry:         registry,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		PostsCreated:     postsCreated,
		CommentsCreated:  commentsCreated,
		VotesCast:        votesCast,
		KarmaAwarded:     karmaAwarded,
		AnalysesRun:      analysesRun,
		SearchesRun:      searchesRun,
		DemoFallbacks:    demoFallbacks,
		TrendCacheHits:   trendCacheHits,
		TrendCacheMisses: trendCacheMisses,
	}
	return globalCollector
}

// Handler returns the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one completed request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
