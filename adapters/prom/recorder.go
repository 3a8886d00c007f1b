// Package prom exposes operation metrics recorded by the Sync service
// through a Prometheus registerer.
package prom

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-twilio-sync/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Labels attached to every collector. Tags outside this set are dropped and
// missing ones are recorded as empty strings.
var Labels = []string{"operation", "status", "resource"}

// DurationBuckets are histogram buckets in milliseconds.
var DurationBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Recorder implements core.MetricsRecorder. Collectors are created on first
// use and registered with the configured registerer.
type Recorder struct {
	mu         sync.Mutex
	registerer prometheus.Registerer
	namespace  string
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	onError    func(name string, err error)
}

type Option func(*Recorder)

func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.namespace = sanitizeName(namespace)
	}
}

// WithErrorHandler receives registration failures. By default they are
// ignored and the sample is dropped.
func WithErrorHandler(fn func(name string, err error)) Option {
	return func(r *Recorder) {
		r.onError = fn
	}
}

func NewRecorder(registerer prometheus.Registerer, opts ...Option) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		registerer: registerer,
		counters:   map[string]*prometheus.CounterVec{},
		histograms: map[string]*prometheus.HistogramVec{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value < 0 {
		return
	}
	counter := r.counter(name)
	if counter == nil {
		return
	}
	counter.WithLabelValues(labelValues(tags)...).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	histogram := r.histogram(name)
	if histogram == nil {
		return
	}
	histogram.WithLabelValues(labelValues(tags)...).Observe(value)
}

func (r *Recorder) counter(name string) *prometheus.CounterVec {
	metricName := r.metricName(name)
	if metricName == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.counters[metricName]; ok {
		return existing
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricName,
		Help: "Count of " + strings.TrimSpace(name),
	}, Labels)
	if err := r.registerer.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			r.reportError(metricName, err)
			return nil
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			r.reportError(metricName, err)
			return nil
		}
		vec = existing
	}
	r.counters[metricName] = vec
	return vec
}

func (r *Recorder) histogram(name string) *prometheus.HistogramVec {
	metricName := r.metricName(name)
	if metricName == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.histograms[metricName]; ok {
		return existing
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metricName,
		Help:    "Distribution of " + strings.TrimSpace(name),
		Buckets: DurationBuckets,
	}, Labels)
	if err := r.registerer.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			r.reportError(metricName, err)
			return nil
		}
		existing, ok := already.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			r.reportError(metricName, err)
			return nil
		}
		vec = existing
	}
	r.histograms[metricName] = vec
	return vec
}

func (r *Recorder) metricName(name string) string {
	metricName := sanitizeName(name)
	if metricName == "" {
		return ""
	}
	if r.namespace != "" && !strings.HasPrefix(metricName, r.namespace+"_") {
		metricName = r.namespace + "_" + metricName
	}
	return metricName
}

func (r *Recorder) reportError(name string, err error) {
	if r.onError != nil {
		r.onError(name, err)
	}
}

func labelValues(tags map[string]string) []string {
	values := make([]string, len(Labels))
	for i, label := range Labels {
		values[i] = strings.TrimSpace(tags[label])
	}
	return values
}

// sanitizeName maps "twiliosync.document.create.total" to
// "twiliosync_document_create_total".
func sanitizeName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == ':'
		if !valid {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore || b.Len() == 0 {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}
	out := strings.TrimRight(b.String(), "_")
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

var _ core.MetricsRecorder = (*Recorder)(nil)
