package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
)

// ErrRegister is returned when the collectors cannot be registered.
var ErrRegister = errors.New("metrics: failed to register collectors")

type options struct {
	namespace string
	buckets   []float64
	labels    prometheus.Labels
}

type Option func(*options)

// WithNamespace replaces the default "formkit" metric prefix.
func WithNamespace(namespace string) Option {
	return func(o *options) { o.namespace = namespace }
}

// WithBuckets sets the histogram buckets of the processing duration.
func WithBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithConstLabels adds labels with fixed values to every collector.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) { o.labels = labels }
}

// Observer implements schema.Observer on top of Prometheus collectors.
type Observer struct {
	fields   *prometheus.CounterVec
	results  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ schema.Observer = (*Observer)(nil)

// New creates the collectors and registers them with reg. Collectors that
// are already registered with the same descriptors are reused, so several
// observers can share one registry.
func New(reg prometheus.Registerer, opts ...Option) (*Observer, error) {
	o := options{
		namespace: "formkit",
		buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	}
	for _, opt := range opts {
		opt(&o)
	}

	obs := &Observer{
		fields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "fields_total",
			Help:        "Processed fields by schema, field and outcome.",
			ConstLabels: o.labels,
		}, []string{"schema", "field", "outcome"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "results_total",
			Help:        "Processed inputs by schema and outcome.",
			ConstLabels: o.labels,
		}, []string{"schema", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "process_duration_seconds",
			Help:        "Time spent processing one input.",
			Buckets:     o.buckets,
			ConstLabels: o.labels,
		}, []string{"schema"}),
	}

	if reg == nil {
		return obs, nil
	}

	var err error
	if obs.fields, err = register(reg, obs.fields); err != nil {
		return nil, err
	}
	if obs.results, err = register(reg, obs.results); err != nil {
		return nil, err
	}
	if obs.duration, err = register(reg, obs.duration); err != nil {
		return nil, err
	}
	return obs, nil
}

// MustNew is like New but panics on error.
func MustNew(reg prometheus.Registerer, opts ...Option) *Observer {
	obs, err := New(reg, opts...)
	if err != nil {
		panic(err)
	}
	return obs
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("%w: %w", ErrRegister, err)
}

func (o *Observer) ObserveField(schemaName, field string, outcome schema.Outcome) {
	o.fields.WithLabelValues(schemaName, field, string(outcome)).Inc()
}

func (o *Observer) ObserveResult(schemaName string, valid bool, elapsed time.Duration) {
	outcome := resultInvalid
	if valid {
		outcome = resultValid
	}
	o.results.WithLabelValues(schemaName, outcome).Inc()
	o.duration.WithLabelValues(schemaName).Observe(elapsed.Seconds())
}

// Collectors returns the underlying collectors, for callers that register
// them manually.
func (o *Observer) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.fields, o.results, o.duration}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
