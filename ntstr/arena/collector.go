package arena

import "github.com/prometheus/client_golang/prometheus"

// Collector exports Arena counters as Prometheus metrics.
type Collector struct {
	arena *Arena
	name  string

	capacityDesc *prometheus.Desc
	inUseDesc    *prometheus.Desc
	liveDesc     *prometheus.Desc
	allocsDesc   *prometheus.Desc
	freesDesc    *prometheus.Desc
	failuresDesc *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector for an Arena.
// name becomes the "arena" label.
func NewCollector(a *Arena, name string) *Collector {
	if a == nil {
		panic("arena required")
	}
	labels := []string{"arena"}
	return &Collector{
		arena:        a,
		name:         name,
		capacityDesc: prometheus.NewDesc("nulterm_arena_capacity_bytes", "Arena region size", labels, nil),
		inUseDesc:    prometheus.NewDesc("nulterm_arena_in_use_bytes", "Bytes held by live blocks", labels, nil),
		liveDesc:     prometheus.NewDesc("nulterm_arena_live_blocks", "Number of live blocks", labels, nil),
		allocsDesc:   prometheus.NewDesc("nulterm_arena_allocs_total", "Successful allocations", labels, nil),
		freesDesc:    prometheus.NewDesc("nulterm_arena_frees_total", "Released blocks", labels, nil),
		failuresDesc: prometheus.NewDesc("nulterm_arena_failures_total", "Failed allocations", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.capacityDesc
	descs <- c.inUseDesc
	descs <- c.liveDesc
	descs <- c.allocsDesc
	descs <- c.freesDesc
	descs <- c.failuresDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.arena.Stats()
	ch <- prometheus.MustNewConstMetric(c.capacityDesc, prometheus.GaugeValue, float64(s.Capacity), c.name)
	ch <- prometheus.MustNewConstMetric(c.inUseDesc, prometheus.GaugeValue, float64(s.InUse), c.name)
	ch <- prometheus.MustNewConstMetric(c.liveDesc, prometheus.GaugeValue, float64(s.LiveBlocks), c.name)
	ch <- prometheus.MustNewConstMetric(c.allocsDesc, prometheus.CounterValue, float64(s.Allocs), c.name)
	ch <- prometheus.MustNewConstMetric(c.freesDesc, prometheus.CounterValue, float64(s.Frees), c.name)
	ch <- prometheus.MustNewConstMetric(c.failuresDesc, prometheus.CounterValue, float64(s.Failures), c.name)
}
