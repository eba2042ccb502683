package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Recorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.FetchAttempt(true)
	m.FetchAttempt(false)
	m.FetchAttempt(false)
	m.CacheLookup(true)
	m.SeriesOrigin("snapshot")
	m.SetCacheEntries(7)

	require.Equal(t, float64(1), testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("success")))
	require.Equal(t, float64(2), testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("failure")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	require.Equal(t, float64(0), testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("miss")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.SeriesOriginTotal.WithLabelValues("snapshot")))
	require.Equal(t, float64(7), testutil.ToFloat64(m.CacheEntries))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.FetchAttempt(true)
		m.CacheLookup(false)
		m.SeriesOrigin("remote")
		m.SetCacheEntries(1)
	})
}
