package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	HitRate  = "hitrate"
	Accuracy = "accuracy"

	Success = "success"
	Failure = "failure"
)

// Observer is the global metrics collector.
var Observer = NewMetrics()

func init() {
	if err := Observer.Register(prometheus.DefaultRegisterer); err != nil {
		panic(err.Error())
	}
}

// Metrics records training and evaluation events.
type Metrics struct {
	prometheus Prometheus
}

// NewMetrics creates a new unregistered set of metrics.
func NewMetrics() *Metrics {
	return &Metrics{prometheus: NewPrometheusMetrics()}
}

// Register registers the metrics with the given registerer.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range m.prometheus.collectors() {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("could not register collector: %w", err)
		}
	}
	return nil
}

// Iteration tracks one training iteration or epoch.
func (m *Metrics) Iteration(algorithm string) {
	m.prometheus.Iterations.WithLabelValues(algorithm).Inc()
}

// Degenerate tracks a cluster that had no members during an update.
func (m *Metrics) Degenerate(algorithm string) {
	m.prometheus.Degenerate.WithLabelValues(algorithm).Inc()
}

// NonConvergence tracks a training run that stopped at its iteration bound.
func (m *Metrics) NonConvergence(algorithm string) {
	m.prometheus.NonConvergence.WithLabelValues(algorithm).Inc()
}

// Run tracks the outcome of a full run.
func (m *Metrics) Run(algorithm string, err error) {
	status := Success
	if err != nil {
		status = Failure
	}
	m.prometheus.Runs.WithLabelValues(algorithm, status).Inc()
}

// Performance sets the latest evaluation results.
// Undefined metrics are exported as NaN.
func (m *Metrics) Performance(algorithm string, hitRate, accuracy float64) {
	m.prometheus.Performance.WithLabelValues(algorithm, HitRate).Set(hitRate)
	m.prometheus.Performance.WithLabelValues(algorithm, Accuracy).Set(accuracy)
}

// Serve exposes the default registry on /metrics at the given port.
// It blocks until the server fails.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
