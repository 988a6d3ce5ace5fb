// Package mazeroute is a detailed-routing maze search engine for physical
// chip design: given a set of already-connected routing fragments and a
// target pin, it finds a legal, cost-minimal wire path through a
// discretized 3-D routing grid (x, y, routing layer), honoring
// manufacturing design rules and existing obstructions.
//
// 🚀 What is mazeroute?
//
//	An in-memory, worker-parallel routing core that brings together:
//		• maze/    — the A*-style wavefront search: state, cost model,
//		             expansion engine, driver and path reconstruction
//		• grid/    — a dense 3-D routing grid with blockage, DRC, marker
//		             and guide overlays (the reference maze.Graph)
//		• tech/    — layer technology data: spacing constraints, via
//		             definitions, forbidden via/turn length tables, NDRs
//		• metrics/ — a Prometheus observer for search introspection
//
// ✨ Design highlights
//
//   - Compressed direction history – a bit-packed ring buffer bounds the
//     memory of millions of concurrent search nodes
//   - Iterative cost escalation – DRC and marker penalties trade places
//     across routing passes, converting hard violations into soft costs
//   - Deterministic tie-breaking – identical inputs yield identical paths
//   - No errors on "no path" – exhaustion is a normal boolean outcome for
//     the caller's ripup-and-reroute loop
//
// One search routes one net/pin pair. Run independent nets in parallel by
// giving each worker its own maze.Engine; the grid geometry and technology
// data are shared read-only, while cost overlays are updated only between
// searches.
//
// Dive into each package's doc.go for contracts, complexity and errors.
//
//	go get github.com/gridwire/mazeroute
package mazeroute
