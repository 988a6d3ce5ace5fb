package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gridwire/mazeroute/maze"
)

const (
	namespace = "mazeroute"
	subsystem = "search"
)

// SearchMetrics observes maze searches and exports Prometheus metrics.
// It implements maze.Observer; install it with maze.WithObserver.
//
// All operations are thread-safe via Prometheus's internal locking, so
// one SearchMetrics may serve any number of Engines.
type SearchMetrics struct {
	// NodesPopped counts wavefront states popped across all searches.
	NodesPopped prometheus.Counter

	// PopPathCost samples the accumulated path cost of popped states;
	// its distribution shows how far searches wander before closing.
	PopPathCost prometheus.Histogram
}

var _ maze.Observer = (*SearchMetrics)(nil)

// New creates search metrics registered with reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry or an
// isolated registry in tests.
func New(reg prometheus.Registerer) *SearchMetrics {
	factory := promauto.With(reg)

	return &SearchMetrics{
		NodesPopped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "nodes_popped_total",
			Help:      "Total wavefront states popped from the open set",
		}),
		PopPathCost: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pop_path_cost",
			Help:      "Accumulated path cost of popped wavefront states",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
}

// SearchNode implements maze.Observer.
func (m *SearchMetrics) SearchNode(g maze.WavefrontGrid) {
	m.NodesPopped.Inc()
	m.PopPathCost.Observe(float64(g.PathCost()))
}
