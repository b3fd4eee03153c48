// Package metrics provides a Prometheus implementation of port.Metrics.
package metrics

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultBuckets provides a common set of histogram buckets in seconds for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// WeightBuckets are histogram buckets in pounds.
var WeightBuckets = []float64{1, 2, 5, 10, 20, 50, 70, 100, 150} //nolint: gochecknoglobals

// Prometheus records metrics in its own registry. Vectors are created on first
// use; the label set of a metric is fixed by its first observation.
type Prometheus struct {
	namespace string
	registry  *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// Ensure Prometheus implements port.Metrics.
var _ port.Metrics = (*Prometheus)(nil)

// NewPrometheus creates a recorder with Go runtime and process collectors registered.
//
// Parameters:
//   - namespace: prefix for every metric name
//
// Returns:
//   - *Prometheus: the recorder
func NewPrometheus(namespace string) *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Prometheus{
		namespace:  namespace,
		registry:   registry,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Counter implements port.Metrics. Negative values are ignored.
func (p *Prometheus) Counter(name string, value float64, tags map[string]string) {
	if value < 0 {
		return
	}
	vec := p.counterVec(name, labelNames(tags))
	if vec == nil {
		return
	}
	if c, err := vec.GetMetricWith(tags); err == nil {
		c.Add(value)
	}
}

// Histogram implements port.Metrics.
func (p *Prometheus) Histogram(name string, value float64, tags map[string]string) {
	p.observe(name, value, WeightBuckets, tags)
}

// Timing implements port.Metrics. Durations are recorded in seconds.
func (p *Prometheus) Timing(name string, duration time.Duration, tags map[string]string) {
	p.observe(name, duration.Seconds(), DefaultBuckets, tags)
}

func (p *Prometheus) observe(name string, value float64, buckets []float64, tags map[string]string) {
	vec := p.histogramVec(name, buckets, labelNames(tags))
	if vec == nil {
		return
	}
	if h, err := vec.GetMetricWith(tags); err == nil {
		h.Observe(value)
	}
}

func (p *Prometheus) counterVec(name string, labels []string) *prometheus.CounterVec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if vec, ok := p.counters[name]; ok {
		return vec
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      name,
	}, labels)
	if err := p.registry.Register(vec); err != nil {
		return nil
	}
	p.counters[name] = vec
	return vec
}

func (p *Prometheus) histogramVec(name string, buckets []float64, labels []string) *prometheus.HistogramVec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if vec, ok := p.histograms[name]; ok {
		return vec
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      name,
		Buckets:   buckets,
	}, labels)
	if err := p.registry.Register(vec); err != nil {
		return nil
	}
	p.histograms[name] = vec
	return vec
}

func labelNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for k := range tags {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
