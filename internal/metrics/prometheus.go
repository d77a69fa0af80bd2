package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "prefetch"

// Prometheus holds the prometheus collectors for training and evaluation.
type Prometheus struct {
	Iterations     *prometheus.CounterVec
	Degenerate     *prometheus.CounterVec
	NonConvergence *prometheus.CounterVec
	Runs           *prometheus.CounterVec
	Performance    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates the collectors, without registering them.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "training_iterations_total",
				Help:      "k-means iterations or kohonen epochs completed.",
			}, []string{"algorithm"}),
		Degenerate: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degenerate_clusters_total",
				Help:      "prototype updates skipped because the cluster had no members.",
			}, []string{"algorithm"}),
		NonConvergence: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "non_convergence_total",
				Help:      "training runs that hit the iteration bound.",
			}, []string{"algorithm"}),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "train and evaluate runs by outcome.",
			}, []string{"algorithm", "status"}),
		Performance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "performance",
				Help:      "latest hit rate and accuracy.",
			}, []string{"algorithm", "metric"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.Iterations,
		p.Degenerate,
		p.NonConvergence,
		p.Runs,
		p.Performance,
	}
}
