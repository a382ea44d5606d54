package tiercache

import "github.com/rcrowley/go-metrics"

// Stats is a point-in-time snapshot of one cache instance's counters.
type Stats struct {
	Hits       int64
	Misses     int64
	Promotions int64
	Evictions  int64
	Expired    int64
}

// cacheMetrics holds per-instance counters. Each cache gets its own
// registry so isolated instances never share state.
type cacheMetrics struct {
	registry   metrics.Registry
	hits       metrics.Counter
	misses     metrics.Counter
	promotions metrics.Counter
	evictions  metrics.Counter
	expired    metrics.Counter
}

func newCacheMetrics() *cacheMetrics {
	r := metrics.NewRegistry()
	return &cacheMetrics{
		registry:   r,
		hits:       metrics.NewRegisteredCounter("hits", r),
		misses:     metrics.NewRegisteredCounter("misses", r),
		promotions: metrics.NewRegisteredCounter("promotions", r),
		evictions:  metrics.NewRegisteredCounter("evictions", r),
		expired:    metrics.NewRegisteredCounter("expired", r),
	}
}

func (m *cacheMetrics) snapshot() Stats {
	return Stats{
		Hits:       m.hits.Count(),
		Misses:     m.misses.Count(),
		Promotions: m.promotions.Count(),
		Evictions:  m.evictions.Count(),
		Expired:    m.expired.Count(),
	}
}
