package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodcourt",
			Name:      "submissions_total",
			Help:      "Item form submissions by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodcourt",
			Name:      "http_requests_total",
			Help:      "Backend HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(submissions, httpRequests)
	})
}

// IncSubmission counts one finished submission attempt.
func IncSubmission(outcome string) {
	submissions.WithLabelValues(outcome).Inc()
}

// IncHTTP counts one served request.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// WriteTextfile writes the default registry to path in the Prometheus
// text format, for pickup by a node_exporter textfile collector. The
// file is replaced atomically.
func WriteTextfile(path string) error {
	Register()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
