// Package observability assembles the process-wide telemetry provider from
// the zap, Prometheus and OpenTelemetry adapters.
package observability

import (
	"fmt"

	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
)

type provider struct {
	tracer  observability.Tracer
	logger  observability.Logger
	metrics observability.Metrics
}

type registeredMetrics struct {
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

// Counter returns a no-op counter for keys that were never registered.
func (m *registeredMetrics) Counter(name observability.MetricKey) observability.Counter {
	if c, ok := m.counters[name]; ok {
		return c
	}
	return observability.NopCounter()
}

func (m *registeredMetrics) Histogram(name observability.MetricKey) observability.Histogram {
	if h, ok := m.histograms[name]; ok {
		return h
	}
	return observability.NopHistogram()
}

// New registers every instrument in observability.CounterSpecs and
// HistogramSpecs on reg and returns the combined provider.
func New(tracer observability.Tracer, logger observability.Logger, reg *prometrics.Registry) (observability.Observability, error) {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	p := &provider{tracer: tracer, logger: logger, metrics: observability.NopMetrics()}
	if reg == nil {
		return p, nil
	}

	m := &registeredMetrics{
		counters:   make(map[observability.MetricKey]observability.Counter, len(observability.CounterSpecs)),
		histograms: make(map[observability.MetricKey]observability.Histogram, len(observability.HistogramSpecs)),
	}
	for _, s := range observability.CounterSpecs {
		c, err := reg.Counter(string(s.Key), s.Help, s.Labels...)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", s.Key, err)
		}
		m.counters[s.Key] = c
	}
	for _, s := range observability.HistogramSpecs {
		h, err := reg.Histogram(string(s.Key), s.Help, nil, s.Labels...)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", s.Key, err)
		}
		m.histograms[s.Key] = h
	}
	p.metrics = m
	return p, nil
}

func (p *provider) Tracer() observability.Tracer   { return p.tracer }
func (p *provider) Logger() observability.Logger   { return p.logger }
func (p *provider) Metrics() observability.Metrics { return p.metrics }
