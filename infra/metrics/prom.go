package metrics

import (
	"strconv"

	coremetrics "github.com/kilianp07/creator/core/metrics"
	"github.com/kilianp07/creator/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records construction outcomes in Prometheus metrics.
type PromSink struct {
	constructions *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	defaults      prometheus.Gauge
}

// NewPromSink registers construction metrics on the default Prometheus registerer.
func NewPromSink(namespace string) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(namespace string, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	constructions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "constructions_total",
		Help:      "Total number of object constructions",
	}, []string{"class", "branch", "succeeded"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "construction_duration_seconds",
		Help:      "Time spent resolving and constructing an object",
		Buckets:   prometheus.DefBuckets,
	}, []string{"class", "branch"})
	defaults := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "default_config_classes",
		Help:      "Number of classes with an entry in the default-configuration table",
	})

	if err := reg.Register(constructions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			constructions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(defaults); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			defaults = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{constructions: constructions, duration: duration, defaults: defaults}, nil
}

// RecordConstruction increments the counter and observes the duration.
// Factories and calls that failed before a class was loaded carry an empty
// class label.
func (s *PromSink) RecordConstruction(c model.Construction) error {
	branch := c.Branch.String()
	s.constructions.WithLabelValues(c.Class, branch, strconv.FormatBool(c.Succeeded())).Inc()
	s.duration.WithLabelValues(c.Class, branch).Observe(c.Duration.Seconds())
	return nil
}

// RecordDefaultsSize sets the gauge to the number of classes with defaults.
func (s *PromSink) RecordDefaultsSize(classes int) error {
	if s.defaults != nil {
		s.defaults.Set(float64(classes))
	}
	return nil
}
