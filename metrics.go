package lru

import "github.com/prometheus/client_golang/prometheus"

// Stats is a point-in-time snapshot of cache usage. Hits and Misses count
// Get and GetMut only; Peek and Contains are not lookups for this purpose.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	Capacity  int
}

// collectors mirrors Stats into Prometheus. A nil *collectors is valid and
// records nothing.
type collectors struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
	size      prometheus.Gauge
}

func newCollectors(namespace string, reg prometheus.Registerer) (*collectors, error) {
	m := &collectors{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of cache hits",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of cache misses",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of entries evicted to respect capacity",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Current number of cached entries",
		}),
	}
	for _, c := range []prometheus.Collector{m.hits, m.misses, m.evictions, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *collectors) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *collectors) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *collectors) evicted() {
	if m != nil {
		m.evictions.Inc()
	}
}

func (m *collectors) resized(n int) {
	if m != nil {
		m.size.Set(float64(n))
	}
}
