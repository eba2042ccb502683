package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use through a nil pointer; every recorder is then a no-op.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FetchAttemptsTotal *prometheus.CounterVec
	CacheLookupsTotal  *prometheus.CounterVec
	SeriesOriginTotal  *prometheus.CounterVec
	CacheEntries       prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		FetchAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_fetch_attempts_total",
				Help: "Upstream rate fetch attempts by result",
			},
			[]string{"result"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Rate cache lookups by result",
			},
			[]string{"result"},
		),

		SeriesOriginTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_series_origin_total",
				Help: "Resolved rate series by serving tier",
			},
			[]string{"origin"},
		),

		CacheEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_cache_entries",
				Help: "Rate cache entries after the last purge",
			},
		),
	}
}

func (m *Metrics) FetchAttempt(ok bool) {
	if m == nil {
		return
	}
	m.FetchAttemptsTotal.WithLabelValues(result(ok, "success", "failure")).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result(hit, "hit", "miss")).Inc()
}

func (m *Metrics) SeriesOrigin(origin string) {
	if m == nil {
		return
	}
	m.SeriesOriginTotal.WithLabelValues(origin).Inc()
}

func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.CacheEntries.Set(float64(n))
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
