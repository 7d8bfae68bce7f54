package observability

import (
	"errors"
	"fmt"

	"github.com/aretw0/soul/pkg/events"
	"github.com/aretw0/soul/pkg/model"
	"github.com/aretw0/soul/pkg/soulset"
	"github.com/prometheus/client_golang/prometheus"
)

// ObservedEvents are the events a Recorder subscribes to.
var ObservedEvents = []string{
	model.EventChange,
	soulset.EventAdd,
	soulset.EventRemove,
	soulset.EventChildChange,
}

// Recorder counts model events into Prometheus collectors.
type Recorder struct {
	events  *prometheus.CounterVec
	changed *prometheus.CounterVec
}

// Option configures a Recorder.
type Option func(*recorderConfig)

type recorderConfig struct {
	namespace string
}

// WithNamespace prefixes the metric names (default "soul").
func WithNamespace(ns string) Option {
	return func(c *recorderConfig) {
		c.namespace = ns
	}
}

// NewRecorder creates a Recorder and registers its collectors with reg.
// Collectors already registered by an equivalent Recorder are reused.
func NewRecorder(reg prometheus.Registerer, opts ...Option) (*Recorder, error) {
	cfg := recorderConfig{namespace: "soul"}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Recorder{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "events_total",
			Help:      "Total number of model events triggered",
		}, []string{"model", "event"}),
		changed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "changed_attributes_total",
			Help:      "Total number of attributes reported as changed",
		}, []string{"model"}),
	}

	var err error
	if r.events, err = register(reg, r.events); err != nil {
		return nil, err
	}
	if r.changed, err = register(reg, r.changed); err != nil {
		return nil, err
	}
	return r, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to register collector: %w", err)
	}
	return c, nil
}

// Observe starts counting the events of src under the given model label.
func (r *Recorder) Observe(src events.Source, name string) {
	for _, event := range ObservedEvents {
		src.On(event, r.listener(name, event), events.WithContext(r))
	}
}

// Forget stops counting the events of src.
func (r *Recorder) Forget(src events.Source) {
	src.OffContext("", r)
}

func (r *Recorder) listener(name, event string) events.Listener {
	counter := r.events.WithLabelValues(name, event)
	return func(args ...any) error {
		counter.Inc()
		if event == model.EventChange && len(args) > 0 {
			if old, ok := args[0].(model.Attributes); ok {
				r.changed.WithLabelValues(name).Add(float64(len(old)))
			}
		}
		return nil
	}
}
