package server

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "htmlform"

// Submission results used as the "result" label.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

type metrics struct {
	renders        *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// newMetrics registers the handler collectors for form on reg. Handlers
// sharing a registerer and a form name share their collectors.
func newMetrics(reg prometheus.Registerer, form string) (*metrics, error) {
	labels := prometheus.Labels{"form": form}

	renders, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Name:        "renders_total",
		Help:        "Number of form renders by HTTP status.",
		ConstLabels: labels,
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}
	submissions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Name:        "submissions_total",
		Help:        "Number of form submissions by validation result.",
		ConstLabels: labels,
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}
	renderDuration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metricsNamespace,
		Name:        "render_duration_seconds",
		Help:        "Time spent rendering the form markup.",
		ConstLabels: labels,
		Buckets:     prometheus.DefBuckets,
	}))
	if err != nil {
		return nil, err
	}

	return &metrics{
		renders:        renders,
		submissions:    submissions,
		renderDuration: renderDuration,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("server: register metrics: %w", err)
}
