// Package tech holds the read-only technology data the maze search
// consults: routing layers, minimum-spacing constraints, via definitions,
// forbidden via-to-via / via-to-turn length tables, and non-default rules
// (NDRs) for nets with custom wire width or spacing.
//
// What:
//
//   - Layer describes one routing layer: preferred direction, width,
//     minimum width, pitch, minimum area and its minimum-spacing rule.
//   - SpacingRule has three concrete kinds, mirroring the constraint
//     taxonomy of LEF-style technology files: SpacingFixed,
//     SpacingTablePRL (width × parallel-run-length table) and
//     SpacingTableTwoWidth (two-width table).
//   - ViaDef carries the metal enclosure and cut shapes of one via,
//     used for NDR enclosure checks and path-area accounting.
//   - NDR overrides width, spacing, wire extension and preferred via per
//     routing level for a single net.
//   - Rules aggregates all of the above plus the forbidden-length tables
//     that the cost model queries on every via or turn.
//
// Why:
//
//   - The search core treats technology as a pure lookup service: Rules
//     is immutable once built and safe to share across concurrent
//     searches without locking.
//
// Errors:
//
//   - ErrBadLenRange: a forbidden-length range with Lo > Hi.
//   - Rules.Layer panics on an unknown layer number: a missing layer is
//     a technology setup bug, not a data-dependent runtime case.
//
// Complexity: every lookup is O(1) or O(log n) over small tables except
// forbidden-length queries, which scan the (short) range list for a key.
package tech
