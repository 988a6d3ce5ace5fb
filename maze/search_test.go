// Package maze_test exercises the search engine end to end on concrete
// grids: routing, detours, forbidden-length steering, determinism and
// the trivial and failing cases.
package maze_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwire/mazeroute/grid"
	"github.com/gridwire/mazeroute/maze"
	"github.com/gridwire/mazeroute/tech"
)

// testRules registers unit-geometry layers for n routing levels.
func testRules(n int) *tech.Rules {
	r := tech.NewRules()
	for z := 0; z < n; z++ {
		dir := tech.Horizontal
		if z%2 == 1 {
			dir = tech.Vertical
		}
		r.AddLayer(&tech.Layer{
			Num:        (z + 1) * 2,
			Dir:        dir,
			Width:      1,
			MinWidth:   1,
			Pitch:      1,
			MinSpacing: tech.SpacingFixed{Min: 1},
		})
	}
	r.SetBottomRoutingLayerNum(2)
	r.SetTopLayerNum(n * 2)

	return r
}

// unitGrid builds a fully connected grid with unit spacing.
func unitGrid(t *testing.T, xd, yd, zd int) *grid.Grid {
	t.Helper()
	coords := func(n int) []int64 {
		s := make([]int64, n)
		for i := range s {
			s[i] = int64(i)
		}

		return s
	}
	g, err := grid.New(coords(xd), coords(yd), coords(zd))
	require.NoError(t, err)

	return g
}

// countingObserver records how many states it saw.
type countingObserver struct {
	pops int
}

func (o *countingObserver) SearchNode(maze.WavefrontGrid) { o.pops++ }

func TestNew_Validation(t *testing.T) {
	g := unitGrid(t, 2, 2, 1)

	_, err := maze.New(nil, testRules(1))
	require.ErrorIs(t, err, maze.ErrNilGraph)

	_, err = maze.New(g, nil)
	require.ErrorIs(t, err, maze.ErrNilRules)
}

// TestSearch_CornerToCorner routes across an open 5×5 plane with a
// second layer available. The result is fully pinned: with expansion
// order N,E,S,W,U,D and ties broken toward the center point, the route
// runs north along x=0 and then east along y=4 at cost 9 (8 unit edges
// plus 1 bend).
func TestSearch_CornerToCorner(t *testing.T) {
	g := unitGrid(t, 5, 5, 2)
	eng, err := maze.New(g, testRules(2))
	require.NoError(t, err)

	route, ok := eng.Search(
		[]maze.MazeIdx{{X: 0, Y: 0, Z: 0}},
		&maze.Pin{AccessPoints: []maze.MazeIdx{{X: 4, Y: 4, Z: 0}}},
		maze.Point{X: 0, Y: 0},
	)
	require.True(t, ok)
	require.Equal(t, int64(9), route.Cost)
	require.Equal(t, []maze.MazeIdx{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 4, Z: 0},
		{X: 4, Y: 4, Z: 0},
	}, route.Waypoints)
	require.Equal(t, maze.MazeIdx{X: 0, Y: 0, Z: 0}, route.Lo)
	require.Equal(t, maze.MazeIdx{X: 4, Y: 4, Z: 0}, route.Hi)
	// every walked cell except the source, destination side first
	require.Len(t, route.Cells, 8)
	require.Equal(t, maze.MazeIdx{X: 4, Y: 4, Z: 0}, route.Cells[0])
}

// TestSearch_SeveredRowDetour removes every planar edge into row y=2 on
// the bottom layer, forcing the route over the second layer. The
// cheapest detour costs 14: 8 planar units, 2 via units and 4 bends
// (turning into the via, out of it, into the descent and out again).
func TestSearch_SeveredRowDetour(t *testing.T) {
	g := unitGrid(t, 5, 5, 2)
	for x := 0; x < 5; x++ {
		g.RemoveEdge(x, 1, 0, maze.DirNorth)
		g.RemoveEdge(x, 2, 0, maze.DirNorth)
	}
	eng, err := maze.New(g, testRules(2))
	require.NoError(t, err)

	route, ok := eng.Search(
		[]maze.MazeIdx{{X: 0, Y: 0, Z: 0}},
		&maze.Pin{AccessPoints: []maze.MazeIdx{{X: 4, Y: 4, Z: 0}}},
		maze.Point{X: 0, Y: 0},
	)
	require.True(t, ok)
	require.Equal(t, int64(14), route.Cost)
	require.Equal(t, 1, route.Hi.Z, "the route must climb to the second layer")
}

// TestSearch_BlockedRowDetour marks every planar edge into row y=2 on
// the bottom layer as blocked. Blocked edges stay traversable but cost
// an extra BlockCost × MinWidth × 20 = 640 each, so the search takes
// the same layer-1 detour as for a severed row (cost 14) instead of
// crossing the blockage at cost 649.
func TestSearch_BlockedRowDetour(t *testing.T) {
	g := unitGrid(t, 5, 5, 2)
	for x := 0; x < 5; x++ {
		g.SetBlocked(x, 1, 0, maze.DirNorth)
		g.SetBlocked(x, 2, 0, maze.DirNorth)
	}
	eng, err := maze.New(g, testRules(2))
	require.NoError(t, err)

	route, ok := eng.Search(
		[]maze.MazeIdx{{X: 0, Y: 0, Z: 0}},
		&maze.Pin{AccessPoints: []maze.MazeIdx{{X: 4, Y: 4, Z: 0}}},
		maze.Point{X: 0, Y: 0},
	)
	require.True(t, ok)
	require.Equal(t, int64(14), route.Cost)
	require.Equal(t, 1, route.Hi.Z, "the route must climb over the blockage")
}

// TestSearch_NoPath isolates the destination cell entirely; the search
// must report absence, not an error.
func TestSearch_NoPath(t *testing.T) {
	g := unitGrid(t, 3, 3, 1)
	g.RemoveEdge(1, 2, 0, maze.DirEast)
	g.RemoveEdge(2, 1, 0, maze.DirNorth)
	eng, err := maze.New(g, testRules(1))
	require.NoError(t, err)

	route, ok := eng.Search(
		[]maze.MazeIdx{{X: 0, Y: 0, Z: 0}},
		&maze.Pin{AccessPoints: []maze.MazeIdx{{X: 2, Y: 2, Z: 0}}},
		maze.Point{X: 0, Y: 0},
	)
	require.False(t, ok)
	require.Nil(t, route)
}

// TestSearch_SourceCoversDestination returns a trivial single-cell
// route without ever starting the wavefront; the observer must not see
// a single pop.
func TestSearch_SourceCoversDestination(t *testing.T) {
	g := unitGrid(t, 3, 3, 1)
	obs := &countingObserver{}
	eng, err := maze.New(g, testRules(1), maze.WithObserver(obs))
	require.NoError(t, err)

	route, ok := eng.Search(
		[]maze.MazeIdx{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}},
		&maze.Pin{AccessPoints: []maze.MazeIdx{{X: 1, Y: 1, Z: 0}}},
		maze.Point{X: 0, Y: 0},
	)
	require.True(t, ok)
	require.Equal(t, []maze.MazeIdx{{X: 1, Y: 1, Z: 0}}, route.Waypoints)
	require.Zero(t, route.Cost)
	require.Zero(t, obs.pops)
}

// TestSearch_ForbiddenViaSteering severs the direct planar edge on a
// 3×1 grid with three layers and forbids via pairs one unit apart on
// the two upper levels. The cheap two-via shortcuts right above the
// destination become expensive, so the route overshoots to x=2 before
// descending: up, east twice, down, west, at cost 8.
func TestSearch_ForbiddenViaSteering(t *testing.T) {
	g := unitGrid(t, 3, 1, 3)
	g.RemoveEdge(0, 0, 0, maze.DirEast)
	rules := testRules(3)
	require.NoError(t, rules.AddVia2ViaForbiddenLen(1, true, true, true, tech.LenRange{Lo: 1, Hi: 1}))
	require.NoError(t, rules.AddVia2ViaForbiddenLen(2, true, true, true, tech.LenRange{Lo: 1, Hi: 1}))

	eng, err := maze.New(g, rules)
	require.NoError(t, err)

	route, ok := eng.Search(
		[]maze.MazeIdx{{X: 0, Y: 0, Z: 0}},
		&maze.Pin{AccessPoints: []maze.MazeIdx{{X: 1, Y: 0, Z: 0}}},
		maze.Point{X: 0, Y: 0},
	)
	require.True(t, ok)
	require.Equal(t, int64(8), route.Cost)
	require.Equal(t, []maze.MazeIdx{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 2, Y: 0, Z: 1},
		{X: 2, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}, route.Waypoints)
}

// TestSearch_Deterministic reruns one search on a reused engine and on
// a fresh engine; all three results must be identical.
func TestSearch_Deterministic(t *testing.T) {
	conn := []maze.MazeIdx{{X: 0, Y: 0, Z: 0}}
	pin := &maze.Pin{AccessPoints: []maze.MazeIdx{{X: 4, Y: 4, Z: 1}}}
	center := maze.Point{X: 2, Y: 2}

	g := unitGrid(t, 5, 5, 2)
	g.SetGridCost(2, 2, 0, maze.DirEast)
	g.SetGridCost(2, 2, 1, maze.DirNorth)

	eng, err := maze.New(g, testRules(2))
	require.NoError(t, err)

	first, ok := eng.Search(conn, pin, center)
	require.True(t, ok)

	again, ok := eng.Search(conn, pin, center)
	require.True(t, ok)
	require.Equal(t, first, again, "reused engine must reproduce the route")

	// rebuild the same grid from scratch for an independent engine
	g2 := unitGrid(t, 5, 5, 2)
	g2.SetGridCost(2, 2, 0, maze.DirEast)
	g2.SetGridCost(2, 2, 1, maze.DirNorth)
	fresh, err := maze.New(g2, testRules(2))
	require.NoError(t, err)
	third, ok := fresh.Search(conn, pin, center)
	require.True(t, ok)
	require.Equal(t, first, third, "fresh engine must reproduce the route")
}

// TestSearch_EmptyPin reports absence for a nil or empty pin.
func TestSearch_EmptyPin(t *testing.T) {
	eng, err := maze.New(unitGrid(t, 3, 3, 1), testRules(1))
	require.NoError(t, err)

	_, ok := eng.Search([]maze.MazeIdx{{X: 0, Y: 0, Z: 0}}, nil, maze.Point{})
	require.False(t, ok)

	_, ok = eng.Search([]maze.MazeIdx{{X: 0, Y: 0, Z: 0}}, &maze.Pin{}, maze.Point{})
	require.False(t, ok)
}
