// Package maze defines core types, configuration options, and sentinel
// errors for the detailed-routing maze search engine.
package maze

import (
	"errors"
	"log/slog"
	"math"

	"github.com/gridwire/mazeroute/tech"
)

// Sentinel errors returned by Engine construction.
var (
	// ErrNilGraph indicates a nil Graph was passed to New.
	ErrNilGraph = errors.New("maze: graph is nil")

	// ErrNilRules indicates a nil *tech.Rules was passed to New.
	ErrNilRules = errors.New("maze: technology rules are nil")

	// ErrEmptyGrid indicates the graph reports a zero-sized dimension.
	ErrEmptyGrid = errors.New("maze: graph must have at least one cell per dimension")

	// ErrBadCostWeight indicates a negative cost weight in an option.
	ErrBadCostWeight = errors.New("maze: cost weights must be non-negative")

	// ErrBadIteration indicates a negative routing pass index or
	// escalation threshold in an option.
	ErrBadIteration = errors.New("maze: iteration values must be non-negative")
)

// noLength is the sentinel for "no via / no turn seen yet" in the
// via-length and turn-length accumulators.
const noLength = int64(math.MaxInt64)

// Dir is one of the six grid moves, or DirUnknown for "no direction".
// The values fit in three bits so a short direction history can be
// packed into a single machine word, and Reverse is pure arithmetic.
type Dir uint8

const (
	// DirUnknown marks unvisited cells and seed states.
	DirUnknown Dir = iota
	// DirDown descends one routing layer (a via).
	DirDown
	// DirSouth decrements y.
	DirSouth
	// DirWest decrements x.
	DirWest
	// DirEast increments x.
	DirEast
	// DirNorth increments y.
	DirNorth
	// DirUp ascends one routing layer (a via).
	DirUp
)

// dirNames indexes by Dir value.
var dirNames = [...]string{"UNKNOWN", "D", "S", "W", "E", "N", "U"}

// String returns the conventional single-letter direction name.
func (d Dir) String() string {
	if int(d) >= len(dirNames) {
		return "INVALID"
	}

	return dirNames[d]
}

// Reverse returns the opposite direction. DirUnknown reverses to itself.
func (d Dir) Reverse() Dir {
	if d == DirUnknown {
		return DirUnknown
	}

	return 7 - d
}

// IsVia reports whether d is a vertical (layer-changing) move.
func (d Dir) IsVia() bool { return d == DirUp || d == DirDown }

// expandDirs is the fixed expansion order of the search. Changing it
// changes tie-breaking, so it is part of the determinism contract.
var expandDirs = [...]Dir{DirNorth, DirEast, DirSouth, DirWest, DirUp, DirDown}

// MazeIdx addresses one grid cell: x and y track indexes plus the
// routing layer index z.
type MazeIdx struct {
	X, Y, Z int
}

// Point is a physical coordinate in database units.
type Point struct {
	X, Y int64
}

// Pin is the destination of one search: the set of grid cells from
// which the pin can be reached (its access points).
type Pin struct {
	AccessPoints []MazeIdx
}

// Route is the result of a successful search.
type Route struct {
	// Waypoints is the minimal turn-point polyline from a source cell to
	// the destination: a waypoint is emitted only where the direction of
	// travel changes.
	Waypoints []MazeIdx
	// Cells lists every grid cell the path walks, destination side
	// first, excluding the final source cell. Callers append these to
	// their connected-component list before routing the next pin.
	Cells []MazeIdx
	// Lo and Hi bound all waypoints; callers use them to seed the local
	// search region for subsequent nets.
	Lo, Hi MazeIdx
	// Cost is the accumulated path cost of the goal state.
	Cost int64
}

// Graph is the read-only grid model the search runs on. All predicates
// take the cell the move starts from plus the move direction; queries
// with DirUnknown ask whether any edge of the cell carries the flag.
// Implementations must be safe for concurrent readers.
type Graph interface {
	// Dims returns the grid dimensions (x tracks, y tracks, layers).
	Dims() (xDim, yDim, zDim int)
	// HasEdge reports whether a traversable edge leaves (x,y,z) toward dir.
	HasEdge(x, y, z int, dir Dir) bool
	// IsBlocked reports an obstruction on the edge.
	IsBlocked(x, y, z int, dir Dir) bool
	// HasGridCost reports a congestion/bias penalty on the edge.
	HasGridCost(x, y, z int, dir Dir) bool
	// HasShapeCost reports a pre-existing shape conflict on the edge.
	HasShapeCost(x, y, z int, dir Dir) bool
	// HasDRCCost reports a design-rule violation at the current snapshot.
	HasDRCCost(x, y, z int, dir Dir) bool
	// HasMarkerCost reports a previously flagged, unresolved violation.
	HasMarkerCost(x, y, z int, dir Dir) bool
	// HasGuide reports that the edge lies inside the routing guide region.
	HasGuide(x, y, z int, dir Dir) bool
	// EdgeLength returns the physical length of the edge, 0 if absent.
	EdgeLength(x, y, z int, dir Dir) int64
	// Point returns the physical coordinate of track crossing (x, y).
	Point(x, y int) Point
	// LayerNum maps a routing level z to its technology layer number.
	LayerNum(z int) int
	// ZHeight returns the physical height of routing level z, used to
	// weight vertical distance in the completion estimate.
	ZHeight(z int) int64
	// XCoords returns the ascending x track coordinates. Read-only.
	XCoords() []int64
	// YCoords returns the ascending y track coordinates. Read-only.
	YCoords() []int64
}

// RegionQuerier is an optional interface a Graph may implement. When
// present, non-default-rule via placement is checked by querying the
// via's bloated enclosure shapes against recorded obstructions instead
// of accumulating per-cell flags.
type RegionQuerier interface {
	// QueryRegion reports whether any obstruction on the given
	// technology layer intersects box.
	QueryRegion(box tech.Rect, layerNum int) bool
}

// Observer is invoked synchronously on every wavefront pop, purely for
// introspection. It receives a value copy and cannot alter search state.
type Observer interface {
	SearchNode(g WavefrontGrid)
}

// AdjustQuery carries the context a HeuristicAdjuster may consult.
type AdjustQuery struct {
	Graph     Graph
	Rules     *tech.Rules
	NDR       *tech.NDR
	Iter      int
	RipupMode int
	DRCCost   int64
	// Next is the cell one step past the estimated cell, along the
	// travel direction; DstLo/DstHi bound the destination region.
	Next, DstLo, DstHi MazeIdx
}

// HeuristicAdjuster tweaks the completion-cost estimate, letting a
// caller plug in process-specific steering without touching the engine.
type HeuristicAdjuster interface {
	// EstPenalty returns a non-negative addition to the estimate.
	EstPenalty(q AdjustQuery) int64
}

// Options configures an Engine. All pass-dependent state (current DRC
// weight, marker weight, pass index, ripup mode) is carried here rather
// than in package globals, so engines with different passes can coexist.
type Options struct {
	// DRCCost weights edges violating a design rule at this snapshot.
	DRCCost int64
	// MarkerCost weights edges carrying an unresolved violation marker.
	MarkerCost int64
	// GridCost weights congested/biased-against edges.
	GridCost int64
	// ShapeCost weights edges with pre-existing shape conflicts.
	ShapeCost int64
	// BlockCost weights outright blocked edges (scaled by min width * 20).
	BlockCost int64
	// GuideCost penalizes edges outside the routing guide region.
	GuideCost int64
	// Iter is the current routing pass index.
	Iter int
	// RipupMode is the current ripup mode of the iteration controller.
	RipupMode int
	// EscalateIter is the pass index at which the via-to-via and
	// via-to-turn penalty classes trade weights.
	EscalateIter int
	// NDR selects the non-default-rule cost variant when non-nil.
	NDR *tech.NDR
	// Adjuster optionally adds process-specific estimate penalties.
	Adjuster HeuristicAdjuster
	// Observer optionally receives every popped wavefront state.
	Observer Observer
	// Logger receives internal-inconsistency warnings.
	Logger *slog.Logger
}

// Option is a functional option for configuring an Engine.
type Option func(*Options)

// DefaultOptions returns the default configuration:
// DRCCost=8, MarkerCost=32, GridCost=2, ShapeCost=8, BlockCost=32,
// GuideCost=1, Iter=0, RipupMode=0, EscalateIter=3, no NDR, no
// adjuster, no observer, slog.Default().
func DefaultOptions() Options {
	return Options{
		DRCCost:      8,
		MarkerCost:   32,
		GridCost:     2,
		ShapeCost:    8,
		BlockCost:    32,
		GuideCost:    1,
		Iter:         0,
		RipupMode:    0,
		EscalateIter: 3,
		Logger:       slog.Default(),
	}
}

// WithDRCCost sets the DRC penalty weight for this pass.
// Panics with ErrBadCostWeight on a negative weight.
func WithDRCCost(w int64) Option {
	return func(o *Options) {
		if w < 0 {
			panic(ErrBadCostWeight.Error())
		}
		o.DRCCost = w
	}
}

// WithMarkerCost sets the marker penalty weight for this pass.
// Panics with ErrBadCostWeight on a negative weight.
func WithMarkerCost(w int64) Option {
	return func(o *Options) {
		if w < 0 {
			panic(ErrBadCostWeight.Error())
		}
		o.MarkerCost = w
	}
}

// WithCostWeights sets the static grid/shape/block/guide weights.
// Panics with ErrBadCostWeight on any negative weight.
func WithCostWeights(grid, shape, block, guide int64) Option {
	return func(o *Options) {
		if grid < 0 || shape < 0 || block < 0 || guide < 0 {
			panic(ErrBadCostWeight.Error())
		}
		o.GridCost, o.ShapeCost, o.BlockCost, o.GuideCost = grid, shape, block, guide
	}
}

// WithIteration sets the routing pass index and ripup mode supplied by
// the iteration controller. Panics with ErrBadIteration when iter < 0.
func WithIteration(iter, ripupMode int) Option {
	return func(o *Options) {
		if iter < 0 {
			panic(ErrBadIteration.Error())
		}
		o.Iter = iter
		o.RipupMode = ripupMode
	}
}

// WithEscalateIter sets the pass index at which the DRC and marker
// weights trade places for forbidden-length penalties.
// Panics with ErrBadIteration when n < 0.
func WithEscalateIter(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadIteration.Error())
		}
		o.EscalateIter = n
	}
}

// WithNDR selects the non-default-rule cost variant for this net.
func WithNDR(ndr *tech.NDR) Option {
	return func(o *Options) { o.NDR = ndr }
}

// WithHeuristicAdjuster installs an estimate-adjustment strategy.
func WithHeuristicAdjuster(a HeuristicAdjuster) Option {
	return func(o *Options) { o.Adjuster = a }
}

// WithObserver installs an observer invoked on every pop.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithLogger routes internal warnings to the given logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
