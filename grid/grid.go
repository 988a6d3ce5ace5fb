package grid

import (
	"github.com/gridwire/mazeroute/maze"
	"github.com/gridwire/mazeroute/tech"
)

// Grid is a concrete routing-grid model backed by flat flag arrays. It
// implements maze.Graph and maze.RegionQuerier.
//
// A new Grid is fully connected: every planar edge and every via edge
// exists and lies inside the guide region. Callers then carve the
// routable region with RemoveEdge, the flag mutators and obstructions.
//
// Mutations are not synchronized; finish building before handing the
// Grid to concurrent searches.
type Grid struct {
	xs, ys   []int64
	zHeights []int64

	// flags holds one byte per (cell, canonical axis)
	flags []uint8

	obstructions []obstruction
}

type obstruction struct {
	box      tech.Rect
	layerNum int
}

var (
	_ maze.Graph         = (*Grid)(nil)
	_ maze.RegionQuerier = (*Grid)(nil)
)

// New builds a fully connected grid over the given track coordinates
// and layer heights. All three lists must be non-empty and strictly
// ascending.
//
// Errors: ErrEmptyGrid, ErrUnsortedTracks.
func New(xCoords, yCoords, zHeights []int64) (*Grid, error) {
	// 1. validate coordinates
	if len(xCoords) == 0 || len(yCoords) == 0 || len(zHeights) == 0 {
		return nil, ErrEmptyGrid
	}
	for _, s := range [][]int64{xCoords, yCoords, zHeights} {
		for i := 1; i < len(s); i++ {
			if s[i] <= s[i-1] {
				return nil, ErrUnsortedTracks
			}
		}
	}

	g := &Grid{
		xs:       append([]int64(nil), xCoords...),
		ys:       append([]int64(nil), yCoords...),
		zHeights: append([]int64(nil), zHeights...),
	}
	g.flags = make([]uint8, len(xCoords)*len(yCoords)*len(zHeights)*axisCount)

	// 2. connect every interior edge, guide on
	xd, yd, zd := len(xCoords), len(yCoords), len(zHeights)
	for z := 0; z < zd; z++ {
		for y := 0; y < yd; y++ {
			for x := 0; x < xd; x++ {
				if x+1 < xd {
					g.flags[g.slot(x, y, z, axisEast)] = flagEdge | flagGuide
				}
				if y+1 < yd {
					g.flags[g.slot(x, y, z, axisNorth)] = flagEdge | flagGuide
				}
				if z+1 < zd {
					g.flags[g.slot(x, y, z, axisUp)] = flagEdge | flagGuide
				}
			}
		}
	}

	return g, nil
}

// Dims implements maze.Graph.
func (g *Grid) Dims() (xDim, yDim, zDim int) {
	return len(g.xs), len(g.ys), len(g.zHeights)
}

// slot flattens (cell, axis) into the flag array.
func (g *Grid) slot(x, y, z, axis int) int {
	return ((z*len(g.ys)+y)*len(g.xs)+x)*axisCount + axis
}

// edgeSlot resolves a (cell, direction) pair to its canonical flag slot.
// It returns -1 when the move leaves the grid.
func (g *Grid) edgeSlot(x, y, z int, dir maze.Dir) int {
	axis := axisEast
	switch dir {
	case maze.DirEast:
		if x+1 >= len(g.xs) {
			return -1
		}
	case maze.DirWest:
		if x == 0 {
			return -1
		}
		x--
	case maze.DirNorth:
		axis = axisNorth
		if y+1 >= len(g.ys) {
			return -1
		}
	case maze.DirSouth:
		axis = axisNorth
		if y == 0 {
			return -1
		}
		y--
	case maze.DirUp:
		axis = axisUp
		if z+1 >= len(g.zHeights) {
			return -1
		}
	case maze.DirDown:
		axis = axisUp
		if z == 0 {
			return -1
		}
		z--
	default:
		return -1
	}

	return g.slot(x, y, z, axis)
}

// hasFlag answers a flag query for one edge, or for any canonical edge
// of the cell when dir is maze.DirUnknown (the form the window-based
// via cost uses).
func (g *Grid) hasFlag(x, y, z int, dir maze.Dir, bit uint8) bool {
	if dir == maze.DirUnknown {
		for axis := 0; axis < axisCount; axis++ {
			if g.flags[g.slot(x, y, z, axis)]&bit != 0 {
				return true
			}
		}

		return false
	}
	s := g.edgeSlot(x, y, z, dir)

	return s >= 0 && g.flags[s]&bit != 0
}

// HasEdge implements maze.Graph.
func (g *Grid) HasEdge(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagEdge)
}

// IsBlocked implements maze.Graph.
func (g *Grid) IsBlocked(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagBlocked)
}

// HasGridCost implements maze.Graph.
func (g *Grid) HasGridCost(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagGridCost)
}

// HasShapeCost implements maze.Graph.
func (g *Grid) HasShapeCost(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagShapeCost)
}

// HasDRCCost implements maze.Graph.
func (g *Grid) HasDRCCost(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagDRCCost)
}

// HasMarkerCost implements maze.Graph.
func (g *Grid) HasMarkerCost(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagMarkerCost)
}

// HasGuide implements maze.Graph.
func (g *Grid) HasGuide(x, y, z int, dir maze.Dir) bool {
	return g.hasFlag(x, y, z, dir, flagGuide)
}

// EdgeLength implements maze.Graph: the physical span of the edge, 0
// when the move leaves the grid.
func (g *Grid) EdgeLength(x, y, z int, dir maze.Dir) int64 {
	switch dir {
	case maze.DirEast:
		if x+1 < len(g.xs) {
			return g.xs[x+1] - g.xs[x]
		}
	case maze.DirWest:
		if x > 0 {
			return g.xs[x] - g.xs[x-1]
		}
	case maze.DirNorth:
		if y+1 < len(g.ys) {
			return g.ys[y+1] - g.ys[y]
		}
	case maze.DirSouth:
		if y > 0 {
			return g.ys[y] - g.ys[y-1]
		}
	case maze.DirUp:
		if z+1 < len(g.zHeights) {
			return g.zHeights[z+1] - g.zHeights[z]
		}
	case maze.DirDown:
		if z > 0 {
			return g.zHeights[z] - g.zHeights[z-1]
		}
	}

	return 0
}

// Point implements maze.Graph.
func (g *Grid) Point(x, y int) maze.Point {
	return maze.Point{X: g.xs[x], Y: g.ys[y]}
}

// LayerNum implements maze.Graph. Routing level z sits on technology
// layer (z+1)*2, the even metal numbering of cut/metal interleaving.
func (g *Grid) LayerNum(z int) int { return (z + 1) * 2 }

// ZHeight implements maze.Graph.
func (g *Grid) ZHeight(z int) int64 { return g.zHeights[z] }

// XCoords implements maze.Graph.
func (g *Grid) XCoords() []int64 { return g.xs }

// YCoords implements maze.Graph.
func (g *Grid) YCoords() []int64 { return g.ys }

// setFlag sets or clears one flag bit on one edge. Out-of-grid moves
// are ignored.
func (g *Grid) setFlag(x, y, z int, dir maze.Dir, bit uint8, on bool) {
	s := g.edgeSlot(x, y, z, dir)
	if s < 0 {
		return
	}
	if on {
		g.flags[s] |= bit
	} else {
		g.flags[s] &^= bit
	}
}

// AddEdge restores a removed edge.
func (g *Grid) AddEdge(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagEdge, true) }

// RemoveEdge removes an edge from the routable region.
func (g *Grid) RemoveEdge(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagEdge, false) }

// SetBlocked marks an edge as obstructed.
func (g *Grid) SetBlocked(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagBlocked, true) }

// ClearBlocked removes the obstruction mark from an edge.
func (g *Grid) ClearBlocked(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagBlocked, false) }

// SetGridCost marks an edge as congested or biased against.
func (g *Grid) SetGridCost(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagGridCost, true) }

// ClearGridCost removes the congestion mark from an edge.
func (g *Grid) ClearGridCost(x, y, z int, dir maze.Dir) {
	g.setFlag(x, y, z, dir, flagGridCost, false)
}

// SetShapeCost marks an edge as conflicting with an existing shape.
func (g *Grid) SetShapeCost(x, y, z int, dir maze.Dir) {
	g.setFlag(x, y, z, dir, flagShapeCost, true)
}

// ClearShapeCost removes the shape-conflict mark from an edge.
func (g *Grid) ClearShapeCost(x, y, z int, dir maze.Dir) {
	g.setFlag(x, y, z, dir, flagShapeCost, false)
}

// SetDRCCost marks an edge as violating a design rule at this snapshot.
func (g *Grid) SetDRCCost(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagDRCCost, true) }

// ClearDRCCost removes the design-rule mark from an edge.
func (g *Grid) ClearDRCCost(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagDRCCost, false) }

// SetMarkerCost marks an edge as carrying an unresolved violation.
func (g *Grid) SetMarkerCost(x, y, z int, dir maze.Dir) {
	g.setFlag(x, y, z, dir, flagMarkerCost, true)
}

// ClearMarkerCost removes the violation marker from an edge.
func (g *Grid) ClearMarkerCost(x, y, z int, dir maze.Dir) {
	g.setFlag(x, y, z, dir, flagMarkerCost, false)
}

// SetGuide includes an edge in the routing guide region.
func (g *Grid) SetGuide(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagGuide, true) }

// ClearGuide excludes an edge from the routing guide region.
func (g *Grid) ClearGuide(x, y, z int, dir maze.Dir) { g.setFlag(x, y, z, dir, flagGuide, false) }

// AddObstruction records a fixed shape on a technology layer for
// region queries.
func (g *Grid) AddObstruction(box tech.Rect, layerNum int) {
	g.obstructions = append(g.obstructions, obstruction{box: box, layerNum: layerNum})
}

// QueryRegion implements maze.RegionQuerier by scanning the recorded
// obstructions. The list is expected to stay short; replace the Grid's
// region index before reaching for this with thousands of shapes.
func (g *Grid) QueryRegion(box tech.Rect, layerNum int) bool {
	for _, o := range g.obstructions {
		if o.layerNum == layerNum && o.box.Intersects(box) {
			return true
		}
	}

	return false
}
