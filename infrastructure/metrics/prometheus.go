// ABOUTME: Prometheus implementation of interfaces.Metrics
// ABOUTME: Counts transport attempts, dropped recipients, cache lookups and enrichment outcomes

package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "podfeed"

// Prometheus records feed pipeline counters on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	transportAttempts *prometheus.CounterVec
	recipientsDropped prometheus.Counter
	cacheLookups      *prometheus.CounterVec
	enrichments       *prometheus.CounterVec
}

// NewPrometheus creates and registers the collectors, plus the Go runtime and
// process collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		transportAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_attempts_total",
			Help:      "Feed fetch attempts by transport strategy and outcome.",
		}, []string{"strategy", "success"}),
		recipientsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_recipients_dropped_total",
			Help:      "Value recipients discarded for missing type, address or split.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Feed cache lookups by result.",
		}, []string{"result"}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichments_total",
			Help:      "Cross-feed lookups by kind and outcome.",
		}, []string{"kind", "success"}),
	}

	p.registry.MustRegister(
		p.transportAttempts,
		p.recipientsDropped,
		p.cacheLookups,
		p.enrichments,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) TransportAttempt(strategy string, success bool) {
	p.transportAttempts.WithLabelValues(strategy, strconv.FormatBool(success)).Inc()
}

func (p *Prometheus) RecipientsDropped(count int) {
	if count > 0 {
		p.recipientsDropped.Add(float64(count))
	}
}

func (p *Prometheus) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(result).Inc()
}

func (p *Prometheus) EnrichmentResult(kind string, success bool) {
	p.enrichments.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

// Registry exposes the underlying registry
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
