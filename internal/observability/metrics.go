package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters for one CLI run. Each run owns its registry so the
// textfile output only carries this run's series. A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	LLMCalls        *prometheus.CounterVec
	LLMCallDuration *prometheus.HistogramVec
	Fallbacks       *prometheus.CounterVec
	ItemsGenerated  *prometheus.CounterVec
	SchemaWarnings  *prometheus.CounterVec
	PagesFetched    *prometheus.CounterVec
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		LLMCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgen_llm_calls_total",
				Help: "Total number of model calls by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		LLMCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contentgen_llm_call_duration_seconds",
				Help:    "Duration of model calls in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
			},
			[]string{"purpose"},
		),
		Fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgen_fallbacks_total",
				Help: "Placeholder or degraded outputs substituted for failed generations",
			},
			[]string{"content_type", "reason"},
		),
		ItemsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgen_items_generated_total",
				Help: "Content items written to the result by content type",
			},
			[]string{"content_type"},
		),
		SchemaWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgen_schema_warnings_total",
				Help: "Decoded model items that did not match their JSON schema",
			},
			[]string{"schema"},
		),
		PagesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgen_pages_fetched_total",
				Help: "Website fetches by method and outcome",
			},
			[]string{"method", "outcome"},
		),
	}
}

// ObserveLLMCall records one model call.
func (m *Metrics) ObserveLLMCall(purpose, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.LLMCalls.WithLabelValues(purpose, outcome).Inc()
	m.LLMCallDuration.WithLabelValues(purpose).Observe(d.Seconds())
}

// IncFallback records a placeholder substitution.
func (m *Metrics) IncFallback(contentType, reason string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(contentType, reason).Inc()
}

// AddItems records generated items for a content type.
func (m *Metrics) AddItems(contentType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ItemsGenerated.WithLabelValues(contentType).Add(float64(n))
}

// IncSchemaWarning records an item that failed schema validation.
func (m *Metrics) IncSchemaWarning(schema string) {
	if m == nil {
		return
	}
	m.SchemaWarnings.WithLabelValues(schema).Inc()
}

// IncPageFetch records a website fetch.
func (m *Metrics) IncPageFetch(method, outcome string) {
	if m == nil {
		return
	}
	m.PagesFetched.WithLabelValues(method, outcome).Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
