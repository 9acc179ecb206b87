package metrics

import (
	"marketplace-service/internal/core/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager owns the service registry and every custom collector.
type MetricsManager struct {
	Registry *prometheus.Registry

	searchLatency    *prometheus.HistogramVec
	searchResults    *prometheus.HistogramVec
	facetProbes      *prometheus.HistogramVec
	facetLatency     *prometheus.HistogramVec
	searchFailures   *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	rateLimitRejects prometheus.Counter
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End to end latency of listing searches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"context"}),
		searchResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results_total",
			Help:      "Number of listings matching a search.",
			Buckets:   []float64{0, 1, 5, 20, 100, 500, 2000},
		}, []string{"context"}),
		facetProbes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "facet_probes_per_search",
			Help:      "Auxiliary count queries issued per search.",
			Buckets:   prometheus.LinearBuckets(5, 5, 6),
		}, []string{"context"}),
		facetLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "facet_count_duration_seconds",
			Help:      "Time spent counting facet options for one search.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"context"}),
		searchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_failures_total",
			Help:      "Failed searches by the stage that failed.",
		}, []string{"context", "stage"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimitRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	registry.MustRegister(
		m.searchLatency,
		m.searchResults,
		m.facetProbes,
		m.facetLatency,
		m.searchFailures,
		m.httpRequests,
		m.httpLatency,
		m.rateLimitRejects,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) ObserveSearch(sc domain.SearchContext, total int, duration time.Duration) {
	m.searchLatency.WithLabelValues(sc.String()).Observe(duration.Seconds())
	m.searchResults.WithLabelValues(sc.String()).Observe(float64(total))
}

func (m *MetricsManager) ObserveFacetProbes(sc domain.SearchContext, probes int, duration time.Duration) {
	m.facetProbes.WithLabelValues(sc.String()).Observe(float64(probes))
	m.facetLatency.WithLabelValues(sc.String()).Observe(duration.Seconds())
}

func (m *MetricsManager) IncSearchFailure(sc domain.SearchContext, stage string) {
	m.searchFailures.WithLabelValues(sc.String(), stage).Inc()
}

// ObserveHTTP records one finished request. route is the chi route pattern,
// never the raw path, to keep label cardinality bounded.
func (m *MetricsManager) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *MetricsManager) IncRateLimited() {
	m.rateLimitRejects.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
