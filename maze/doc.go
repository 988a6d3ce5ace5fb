// Package maze implements the detailed-routing maze search: an A*-style
// wavefront expansion over a three-dimensional routing grid that finds a
// minimum-cost path from a net's connected component to a pin.
//
// Overview:
//
//   - The search pops the cheapest wavefront state from a min-heap,
//     tests it against the goal set, and expands it into up to six
//     neighbors (north, east, south, west, up, down).
//   - Each move is priced by physical edge length scaled by routing
//     penalties (congestion, blockage, design-rule and marker history,
//     guide adherence) plus bend and forbidden-length penalties derived
//     from the technology in package tech.
//   - Path memory is split between a 4-entry bit-packed backtrace buffer
//     carried per state and a per-cell visitation record the buffer
//     spills into, so a state stays a single small struct no matter how
//     long its path is.
//
// When to use:
//
//   - As the inner search of a rip-up-and-reroute detailed router: the
//     iteration controller owns net ordering and cost escalation and
//     passes both in via Options.
//   - Anywhere a deterministic, cost-driven path search over a
//     non-uniform 3D grid with via legality rules is needed.
//
// Key features:
//
//   - Deterministic: states pop in (cost, center distance, insertion
//     order), and expansion order is fixed, so identical inputs always
//     produce identical routes.
//   - Non-default rules: nets with custom width or spacing switch to a
//     window-based cost accumulation sized by the governing spacing.
//   - Pluggable estimate adjustment (HeuristicAdjuster) and search
//     introspection (Observer) without any cost on the default path.
//
// Performance and complexity:
//
//   - Time: O(C log C) for C visited cells; each cell is expanded at
//     most once and each push/pop costs O(log heap).
//   - Space: O(N) for N grid cells of per-cell state plus the heap,
//     all reused across searches on the same Engine.
//
// Error handling:
//
//   - New returns ErrNilGraph, ErrNilRules or ErrEmptyGrid on invalid
//     construction; option constructors panic on invalid values.
//   - Search reports "no path" as (nil, false) — an expected routing
//     outcome, not an error.
//   - Internal record inconsistencies during path traceback are logged
//     through the configured slog.Logger and the search degrades to the
//     partial path rather than failing.
//   - A layer whose minimum-spacing constraint is of an unknown kind
//     panics: technology setup bugs are fatal.
//
// Thread safety:
//
//   - An Engine is single-threaded. The Graph and *tech.Rules it reads
//     are never written by the search, so any number of Engines may
//     share them for concurrent searches.
package maze
