// Package metrics exports Prometheus instrumentation for the maze
// search via the maze.Observer hook.
//
// What:
//
//   - SearchMetrics counts popped wavefront states and samples their
//     accumulated path cost, giving per-deployment visibility into how
//     hard the router is working without touching the search core.
//
// Usage:
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	eng, err := maze.New(g, rules, maze.WithObserver(m))
//
// The observer runs synchronously on every pop; Prometheus counter and
// histogram updates are a few atomic operations, cheap enough to leave
// enabled in production.
package metrics
