package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwire/mazeroute/grid"
	"github.com/gridwire/mazeroute/maze"
	"github.com/gridwire/mazeroute/tech"
)

func newGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New([]int64{0, 10, 30}, []int64{0, 5, 15}, []int64{0, 20})
	require.NoError(t, err)

	return g
}

func TestNew_Validation(t *testing.T) {
	_, err := grid.New(nil, []int64{0}, []int64{0})
	require.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.New([]int64{0, 1}, []int64{0}, nil)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.New([]int64{0, 1, 1}, []int64{0}, []int64{0})
	require.ErrorIs(t, err, grid.ErrUnsortedTracks)

	_, err = grid.New([]int64{0, 1}, []int64{5, 3}, []int64{0})
	require.ErrorIs(t, err, grid.ErrUnsortedTracks)
}

// TestConnectivity checks that a fresh grid connects every interior
// edge, stops at the boundary, and carries the guide flag everywhere.
func TestConnectivity(t *testing.T) {
	g := newGrid(t)

	require.True(t, g.HasEdge(0, 0, 0, maze.DirEast))
	require.True(t, g.HasEdge(1, 1, 0, maze.DirWest))
	require.True(t, g.HasEdge(1, 1, 0, maze.DirUp))
	require.True(t, g.HasEdge(1, 1, 1, maze.DirDown))
	require.True(t, g.HasGuide(0, 0, 0, maze.DirNorth))

	// boundary moves have no edge
	require.False(t, g.HasEdge(2, 0, 0, maze.DirEast))
	require.False(t, g.HasEdge(0, 0, 0, maze.DirWest))
	require.False(t, g.HasEdge(0, 0, 0, maze.DirSouth))
	require.False(t, g.HasEdge(0, 0, 1, maze.DirUp))
	require.False(t, g.HasEdge(0, 0, 0, maze.DirDown))
}

// TestCanonicalEdges verifies both views of one edge share the flags:
// marking (1,1,0) east must be visible from (2,1,0) west, and likewise
// for the vertical pairs.
func TestCanonicalEdges(t *testing.T) {
	g := newGrid(t)

	g.SetBlocked(1, 1, 0, maze.DirEast)
	require.True(t, g.IsBlocked(1, 1, 0, maze.DirEast))
	require.True(t, g.IsBlocked(2, 1, 0, maze.DirWest))
	require.False(t, g.IsBlocked(1, 1, 0, maze.DirWest))

	g.SetDRCCost(1, 1, 1, maze.DirDown)
	require.True(t, g.HasDRCCost(1, 1, 0, maze.DirUp))

	g.RemoveEdge(0, 1, 0, maze.DirNorth)
	require.False(t, g.HasEdge(0, 2, 0, maze.DirSouth))
	g.AddEdge(0, 2, 0, maze.DirSouth)
	require.True(t, g.HasEdge(0, 1, 0, maze.DirNorth))
}

// TestDirUnknownQuery checks the any-edge form used by the via rule
// window: a flag on any canonical edge of the cell answers true.
func TestDirUnknownQuery(t *testing.T) {
	g := newGrid(t)

	require.False(t, g.HasMarkerCost(1, 1, 0, maze.DirUnknown))
	g.SetMarkerCost(1, 1, 0, maze.DirNorth)
	require.True(t, g.HasMarkerCost(1, 1, 0, maze.DirUnknown))
	// the neighbor's canonical edge does not belong to this cell
	require.False(t, g.HasMarkerCost(1, 0, 0, maze.DirUnknown))
}

// TestEdgeLength checks physical spans on non-uniform tracks.
func TestEdgeLength(t *testing.T) {
	g := newGrid(t)

	require.Equal(t, int64(10), g.EdgeLength(0, 0, 0, maze.DirEast))
	require.Equal(t, int64(20), g.EdgeLength(1, 0, 0, maze.DirEast))
	require.Equal(t, int64(20), g.EdgeLength(2, 0, 0, maze.DirWest))
	require.Equal(t, int64(5), g.EdgeLength(0, 0, 0, maze.DirNorth))
	require.Equal(t, int64(10), g.EdgeLength(0, 2, 0, maze.DirSouth))
	require.Equal(t, int64(20), g.EdgeLength(0, 0, 0, maze.DirUp))
	require.Equal(t, int64(20), g.EdgeLength(0, 0, 1, maze.DirDown))
	// off the grid: zero
	require.Zero(t, g.EdgeLength(2, 0, 0, maze.DirEast))
	require.Zero(t, g.EdgeLength(0, 0, 1, maze.DirUp))
}

func TestPointAndLayers(t *testing.T) {
	g := newGrid(t)

	require.Equal(t, maze.Point{X: 10, Y: 15}, g.Point(1, 2))
	require.Equal(t, 2, g.LayerNum(0))
	require.Equal(t, 4, g.LayerNum(1))
	require.Equal(t, int64(20), g.ZHeight(1))
	require.Equal(t, []int64{0, 10, 30}, g.XCoords())
}

// TestQueryRegion checks obstruction lookup by layer and overlap.
func TestQueryRegion(t *testing.T) {
	g := newGrid(t)
	g.AddObstruction(tech.Rect{XLo: 0, YLo: 0, XHi: 10, YHi: 10}, 2)

	require.True(t, g.QueryRegion(tech.Rect{XLo: 5, YLo: 5, XHi: 20, YHi: 20}, 2))
	// touching counts as intersecting
	require.True(t, g.QueryRegion(tech.Rect{XLo: 10, YLo: 0, XHi: 15, YHi: 5}, 2))
	// disjoint box
	require.False(t, g.QueryRegion(tech.Rect{XLo: 11, YLo: 11, XHi: 20, YHi: 20}, 2))
	// wrong layer
	require.False(t, g.QueryRegion(tech.Rect{XLo: 5, YLo: 5, XHi: 20, YHi: 20}, 4))
}
