package maze

import (
	"github.com/gridwire/mazeroute/tech"
)

// Engine runs maze searches over one Graph under one technology and one
// configuration. An Engine is reusable across searches but not safe for
// concurrent use; run concurrent searches on separate Engines sharing
// the same Graph and Rules.
type Engine struct {
	g     Graph
	rules *tech.Rules
	cfg   Options

	xDim, yDim, zDim int

	// per-search scratch state, reset on every Search call
	wf       wavefront
	prevDirs []Dir
	srcs     []bool
	dsts     []bool
}

// New validates the inputs, applies opts over DefaultOptions and returns
// a ready Engine.
//
// Errors: ErrNilGraph, ErrNilRules, ErrEmptyGrid. Invalid option values
// panic inside the option, before New runs.
func New(g Graph, rules *tech.Rules, opts ...Option) (*Engine, error) {
	// 1. validate inputs
	if g == nil {
		return nil, ErrNilGraph
	}
	if rules == nil {
		return nil, ErrNilRules
	}
	xDim, yDim, zDim := g.Dims()
	if xDim <= 0 || yDim <= 0 || zDim <= 0 {
		return nil, ErrEmptyGrid
	}

	// 2. resolve configuration
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 3. allocate per-cell search state
	n := xDim * yDim * zDim
	return &Engine{
		g:        g,
		rules:    rules,
		cfg:      cfg,
		xDim:     xDim,
		yDim:     yDim,
		zDim:     zDim,
		prevDirs: make([]Dir, n),
		srcs:     make([]bool, n),
		dsts:     make([]bool, n),
	}, nil
}

// Search routes from the connected component conn to pin. conn lists
// every cell already belonging to the net; pin's access points are the
// goal set. center biases cost ties toward physically central paths.
//
// On success it returns the found Route and true. When no path exists,
// or pin has no access points, it returns (nil, false); absence of a
// path is an expected routing outcome, not an error.
func (e *Engine) Search(conn []MazeIdx, pin *Pin, center Point) (*Route, bool) {
	if pin == nil || len(pin.AccessPoints) == 0 {
		return nil, false
	}
	e.reset()

	// 1. mark goal cells and bound the destination region
	dstLo := MazeIdx{X: e.xDim - 1, Y: e.yDim - 1, Z: e.zDim - 1}
	dstHi := MazeIdx{}
	for _, ap := range pin.AccessPoints {
		e.dsts[e.at(ap)] = true
		dstLo.X, dstLo.Y, dstLo.Z = minInt(dstLo.X, ap.X), minInt(dstLo.Y, ap.Y), minInt(dstLo.Z, ap.Z)
		dstHi.X, dstHi.Y, dstHi.Z = maxInt(dstHi.X, ap.X), maxInt(dstHi.Y, ap.Y), maxInt(dstHi.Z, ap.Z)
	}

	// 2. seed the wavefront from the connected component
	for _, idx := range conn {
		if e.isDst(idx) {
			// the component already touches the pin; nothing to route
			return &Route{
				Waypoints: []MazeIdx{idx},
				Cells:     []MazeIdx{idx},
				Lo:        idx,
				Hi:        idx,
			}, true
		}
		e.srcs[e.at(idx)] = true

		pt := e.g.Point(idx.X, idx.Y)
		layer := e.rules.Layer(e.g.LayerNum(idx.Z))
		seed := WavefrontGrid{
			idx:      idx,
			pathCost: 0,
			cost:     e.estCost(idx, dstLo, dstHi, DirUnknown),
			// zero-length stubs still owe the layer's minimum area
			layerPathArea: layer.MinArea,
			vLengthX:      noLength,
			vLengthY:      noLength,
			prevViaUp:     true,
			tLength:       noLength,
			dist:          abs64(pt.X-center.X) + abs64(pt.Y-center.Y),
		}
		e.wf.push(&seed)
	}

	// 3. pop, test, expand until the goal is reached or the open set dries up
	for !e.wf.empty() {
		curr := e.wf.pop()
		if e.prevDir(curr.idx) != DirUnknown {
			// a cheaper state already claimed this cell
			continue
		}
		if e.cfg.Observer != nil {
			e.cfg.Observer.SearchNode(*curr)
		}
		if e.isDst(curr.idx) {
			return e.traceBackPath(curr), true
		}
		if d := curr.LastDir(); d != DirUnknown {
			e.setPrevDir(curr.idx, d)
		}
		e.expandWavefront(curr, dstLo, dstHi, center)
	}

	return nil, false
}

// traceBackPath reconstructs the route of the popped goal state: first
// from the state's own backtrace buffer, then from the per-cell
// visitation record until a source cell is reached.
func (e *Engine) traceBackPath(goal *WavefrontGrid) *Route {
	route := &Route{Cost: goal.pathCost}
	curr := goal.idx
	prev := DirUnknown

	// 1. drain the buffer, newest step first
	buf := goal.buffer
	for i := 0; i < bufferSize; i++ {
		if e.isSrc(curr) {
			break
		}
		dir := buf.last()
		buf.shift()
		if dir == DirUnknown {
			// the goal state owes every step back to a source either to
			// its buffer or to the visitation record; an unknown entry
			// here means the record broke, so keep what we have
			e.cfg.Logger.Warn("unexpected direction in path traceback",
				"x", curr.X, "y", curr.Y, "z", curr.Z)
			break
		}
		route.Cells = append(route.Cells, curr)
		if dir != prev {
			route.Waypoints = append(route.Waypoints, curr)
		}
		curr = prevStepIdx(curr, dir)
		prev = dir
	}

	// 2. follow the committed visitation record back to a source
	for !e.isSrc(curr) {
		dir := e.prevDir(curr)
		route.Cells = append(route.Cells, curr)
		if dir == DirUnknown {
			e.cfg.Logger.Warn("unexpected direction in path traceback",
				"x", curr.X, "y", curr.Y, "z", curr.Z)
			break
		}
		if dir != prev {
			route.Waypoints = append(route.Waypoints, curr)
		}
		curr = prevStepIdx(curr, dir)
		prev = dir
	}

	// 3. close the polyline at the source and orient it source-first
	if len(route.Waypoints) > 0 {
		route.Waypoints = append(route.Waypoints, curr)
	}
	for i, j := 0, len(route.Waypoints)-1; i < j; i, j = i+1, j-1 {
		route.Waypoints[i], route.Waypoints[j] = route.Waypoints[j], route.Waypoints[i]
	}

	route.Lo, route.Hi = goal.idx, goal.idx
	for _, wp := range route.Waypoints {
		route.Lo.X, route.Lo.Y, route.Lo.Z = minInt(route.Lo.X, wp.X), minInt(route.Lo.Y, wp.Y), minInt(route.Lo.Z, wp.Z)
		route.Hi.X, route.Hi.Y, route.Hi.Z = maxInt(route.Hi.X, wp.X), maxInt(route.Hi.Y, wp.Y), maxInt(route.Hi.Z, wp.Z)
	}

	return route
}

// reset clears all per-search scratch state.
func (e *Engine) reset() {
	e.wf.cleanup()
	clear(e.prevDirs)
	clear(e.srcs)
	clear(e.dsts)
}

// at flattens a cell index into the scratch arrays.
func (e *Engine) at(i MazeIdx) int {
	return (i.Z*e.yDim+i.Y)*e.xDim + i.X
}

func (e *Engine) inBounds(i MazeIdx) bool {
	return i.X >= 0 && i.X < e.xDim &&
		i.Y >= 0 && i.Y < e.yDim &&
		i.Z >= 0 && i.Z < e.zDim
}

func (e *Engine) isSrc(i MazeIdx) bool { return e.srcs[e.at(i)] }

func (e *Engine) isDst(i MazeIdx) bool { return e.dsts[e.at(i)] }

func (e *Engine) prevDir(i MazeIdx) Dir { return e.prevDirs[e.at(i)] }

func (e *Engine) setPrevDir(i MazeIdx, d Dir) { e.prevDirs[e.at(i)] = d }

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
