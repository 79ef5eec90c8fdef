// Package observabilitytest records telemetry in memory for assertions.
package observabilitytest

import (
	"sync"

	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
)

type Entry struct {
	Level  string
	Msg    string
	Fields map[string]any
}

type Sample struct {
	Key    observability.MetricKey
	Value  float64
	Labels map[string]string
}

// Recorder implements observability.Observability. Spans come from the
// no-op tracer; logs and metric samples are kept for inspection.
type Recorder struct {
	mu       sync.Mutex
	entries  []Entry
	counters []Sample
	hists    []Sample
}

func New() *Recorder { return &Recorder{} }

func (r *Recorder) Tracer() observability.Tracer   { return observability.NopTracer() }
func (r *Recorder) Logger() observability.Logger   { return &logger{r: r} }
func (r *Recorder) Metrics() observability.Metrics { return metrics{r: r} }

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Find returns the first log entry with msg.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

func (r *Recorder) Counters(key observability.MetricKey) []Sample {
	return r.filter(r.counters, key)
}

func (r *Recorder) Histograms(key observability.MetricKey) []Sample {
	return r.filter(r.hists, key)
}

func (r *Recorder) filter(in []Sample, key observability.MetricKey) []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Sample
	for _, s := range in {
		if s.Key == key {
			out = append(out, s)
		}
	}
	return out
}

type logger struct {
	r      *Recorder
	fields []observability.Field
}

func (l *logger) With(fields ...observability.Field) observability.Logger {
	return &logger{r: l.r, fields: append(append([]observability.Field(nil), l.fields...), fields...)}
}

func (l *logger) Debug(msg string, f ...observability.Field) { l.log("debug", msg, f) }
func (l *logger) Info(msg string, f ...observability.Field)  { l.log("info", msg, f) }
func (l *logger) Warn(msg string, f ...observability.Field)  { l.log("warn", msg, f) }
func (l *logger) Error(msg string, f ...observability.Field) { l.log("error", msg, f) }

func (l *logger) log(level, msg string, fs []observability.Field) {
	m := make(map[string]any, len(l.fields)+len(fs))
	for _, f := range l.fields {
		m[f.Key] = f.Value
	}
	for _, f := range fs {
		m[f.Key] = f.Value
	}
	l.r.mu.Lock()
	l.r.entries = append(l.r.entries, Entry{Level: level, Msg: msg, Fields: m})
	l.r.mu.Unlock()
}

type metrics struct{ r *Recorder }

func (m metrics) Counter(k observability.MetricKey) observability.Counter {
	return instrument{r: m.r, key: k, hist: false}
}

func (m metrics) Histogram(k observability.MetricKey) observability.Histogram {
	return instrument{r: m.r, key: k, hist: true}
}

type instrument struct {
	r    *Recorder
	key  observability.MetricKey
	hist bool
}

func (i instrument) Add(v float64, labels ...observability.Label)     { i.record(v, labels) }
func (i instrument) Observe(v float64, labels ...observability.Label) { i.record(v, labels) }

func (i instrument) record(v float64, labels []observability.Label) {
	lm := make(map[string]string, len(labels))
	for _, l := range labels {
		lm[l.Key] = l.Value
	}
	s := Sample{Key: i.key, Value: v, Labels: lm}
	i.r.mu.Lock()
	if i.hist {
		i.r.hists = append(i.r.hists, s)
	} else {
		i.r.counters = append(i.r.counters, s)
	}
	i.r.mu.Unlock()
}
