package maze

import (
	"fmt"
	"sort"

	"github.com/gridwire/mazeroute/tech"
)

// estCost estimates the remaining completion cost from src to the
// destination bounding region [dstLo, dstHi]: Manhattan distance in x,
// y and layer-weighted z to the nearest point of the region, plus one
// unit per axis that still requires a direction change relative to the
// current travel direction, plus any configured adjuster penalty.
//
// The bend term and the adjuster can overestimate the true remaining
// cost; that inadmissibility is a deliberate routing-quality trade-off.
func (e *Engine) estCost(src, dstLo, dstHi MazeIdx, dir Dir) int64 {
	srcPt := e.g.Point(src.X, src.Y)
	loPt := e.g.Point(dstLo.X, dstLo.Y)
	hiPt := e.g.Point(dstHi.X, dstHi.Y)

	minCostX := max64(max64(loPt.X-srcPt.X, srcPt.X-hiPt.X), 0)
	minCostY := max64(max64(loPt.Y-srcPt.Y, srcPt.Y-hiPt.Y), 0)
	minCostZ := max64(max64(e.g.ZHeight(dstLo.Z)-e.g.ZHeight(src.Z),
		e.g.ZHeight(src.Z)-e.g.ZHeight(dstHi.Z)), 0)

	var bendCnt int64
	if minCostX > 0 && dir != DirUnknown && dir != DirEast && dir != DirWest {
		bendCnt++
	}
	if minCostY > 0 && dir != DirUnknown && dir != DirSouth && dir != DirNorth {
		bendCnt++
	}
	if minCostZ > 0 && dir != DirUnknown && dir != DirUp && dir != DirDown {
		bendCnt++
	}

	est := minCostX + minCostY + minCostZ + bendCnt
	if e.cfg.Adjuster != nil {
		// The adjuster inspects the cell one step further along dir.
		next := stepIdx(src, dir)
		if e.inBounds(next) {
			est += e.cfg.Adjuster.EstPenalty(AdjustQuery{
				Graph:     e.g,
				Rules:     e.rules,
				NDR:       e.cfg.NDR,
				Iter:      e.cfg.Iter,
				RipupMode: e.cfg.RipupMode,
				DRCCost:   e.cfg.DRCCost,
				Next:      next,
				DstLo:     dstLo,
				DstHi:     dstHi,
			})
		}
	}

	return est
}

// nextPathCost prices one move from curr toward dir: the accumulated
// path cost plus a bend unit, plus forbidden via-to-via and via-to-turn
// penalties, plus the per-edge flag costs (default or NDR variant).
func (e *Engine) nextPathCost(curr *WavefrontGrid, dir Dir) int64 {
	gx, gy, gz := curr.idx.X, curr.idx.Y, curr.idx.Z
	cost := curr.pathCost
	currDir := curr.LastDir()
	layer := e.rules.Layer(e.g.LayerNum(gz))

	// bending cost
	if currDir != dir && currDir != DirUnknown {
		cost++
	}

	// via-to-via forbidden length: moving vertically, test the run
	// accumulated since the previous via on whichever axes carried it.
	if dir.IsVia() {
		vx, vy := curr.vLength()
		currViaUp := dir == DirUp
		forbidden := false
		switch {
		case vx == 0 && vy > 0 &&
			e.rules.IsVia2ViaForbiddenLen(gz, !curr.prevViaUp, !currViaUp, false, vy, e.cfg.NDR):
			forbidden = true
		case vx > 0 && vy == 0 &&
			e.rules.IsVia2ViaForbiddenLen(gz, !curr.prevViaUp, !currViaUp, true, vx, e.cfg.NDR):
			forbidden = true
		case vx > 0 && vy > 0 &&
			e.rules.IsVia2ViaForbiddenLen(gz, !curr.prevViaUp, !currViaUp, false, vy, e.cfg.NDR) &&
			e.rules.IsVia2ViaForbiddenLen(gz, !curr.prevViaUp, !currViaUp, true, vx, e.cfg.NDR):
			forbidden = true
		}
		if forbidden {
			el := e.g.EdgeLength(gx, gy, gz, dir)
			if e.cfg.Iter >= e.cfg.EscalateIter {
				cost += e.cfg.MarkerCost * el
			} else {
				cost += e.cfg.DRCCost * el
			}
		}
	}

	// via-to-turn forbidden length: a bend adjacent to a via. The weight
	// selection is deliberately inverted relative to the via-to-via case
	// so the two violation classes trade severity across passes.
	if currDir != DirUnknown && currDir != dir {
		forbidden := false
		if dir.IsVia() {
			// next move is a via after a planar run
			turnViaUp := dir == DirUp
			switch currDir {
			case DirWest, DirEast:
				forbidden = e.rules.IsViaForbiddenTurnLen(gz, !turnViaUp, true, curr.tLength, e.cfg.NDR)
			case DirSouth, DirNorth:
				forbidden = e.rules.IsViaForbiddenTurnLen(gz, !turnViaUp, false, curr.tLength, e.cfg.NDR)
			}
		} else {
			// planar turn after a via
			switch currDir {
			case DirWest, DirEast:
				forbidden = e.rules.IsViaForbiddenTurnLen(gz, !curr.prevViaUp, true, curr.vLengthX, e.cfg.NDR)
			case DirSouth, DirNorth:
				forbidden = e.rules.IsViaForbiddenTurnLen(gz, !curr.prevViaUp, false, curr.vLengthY, e.cfg.NDR)
			}
		}
		if forbidden {
			el := e.g.EdgeLength(gx, gy, gz, dir)
			if e.cfg.Iter >= e.cfg.EscalateIter {
				cost += e.cfg.DRCCost * el
			} else {
				cost += e.cfg.MarkerCost * el
			}
		}
	}

	if e.cfg.NDR != nil {
		cost += e.costsNDR(gx, gy, gz, dir, currDir, layer)
	} else {
		cost += e.costs(gx, gy, gz, dir, layer)
	}

	return cost
}

// costs prices one edge under default rules: edge length scaled by every
// flag the grid model reports for it.
func (e *Engine) costs(gx, gy, gz int, dir Dir, layer *tech.Layer) int64 {
	el := e.g.EdgeLength(gx, gy, gz, dir)
	cost := el
	if e.g.HasGridCost(gx, gy, gz, dir) {
		cost += e.cfg.GridCost * el
	}
	if e.g.HasDRCCost(gx, gy, gz, dir) {
		cost += e.cfg.DRCCost * el
	}
	if e.g.HasMarkerCost(gx, gy, gz, dir) {
		cost += e.cfg.MarkerCost * el
	}
	if e.g.HasShapeCost(gx, gy, gz, dir) {
		cost += e.cfg.ShapeCost * el
	}
	if e.g.IsBlocked(gx, gy, gz, dir) {
		cost += e.cfg.BlockCost * layer.MinWidth * 20
	}
	if !e.g.HasGuide(gx, gy, gz, dir) {
		cost += e.cfg.GuideCost * el
	}

	return cost
}

// costsNDR prices one edge under a non-default rule. A wider wire can
// violate spacing against neighbors beyond the single-cell footprint, so
// the flag penalties are accumulated over a rectangular window sized by
// (rule width/2 + rule spacing + default width/2) around the edge.
func (e *Engine) costsNDR(gx, gy, gz int, dir, prevDir Dir, layer *tech.Layer) int64 {
	if dir.IsVia() {
		return e.viaCostsNDR(gx, gy, gz, dir, prevDir, layer)
	}

	ndr := e.cfg.NDR
	el := e.g.EdgeLength(gx, gy, gz, dir)
	cost := el
	if e.g.HasGridCost(gx, gy, gz, dir) {
		cost += e.cfg.GridCost * el
	}
	if !e.g.HasGuide(gx, gy, gz, dir) {
		cost += e.cfg.GuideCost * el
	}

	layerWidth := max64(layer.MinWidth, ndr.Width(gz))
	sp := max64(ndr.Spacing(gz), e.minSpacingValue(layer, layerWidth, layer.MinWidth, 0))
	wext := max64(ndr.WireExtension(gz), layer.MinWidth/2) - layer.MinWidth/2
	r := layerWidth/2 + sp + layer.MinWidth/2 - 1

	xs, ys := e.g.XCoords(), e.g.YCoords()
	var startX, endX, startY, endY int
	var x1, x2, y1, y2 int64
	if dir == DirNorth || dir == DirSouth {
		x1, x2 = xs[gx]-r, xs[gx]+r
		startX, endX = lowerBoundIndex(xs, x1), upperBoundIndex(xs, x2)
		startY, endY = gy, gy
		y1, y2 = ys[gy], ys[gy]
		if prevDir == DirUnknown || prevDir != dir {
			// a new run or a turn extends the window behind the wire end
			if dir == DirNorth {
				y1 = ys[gy] - r - wext
				startY = lowerBoundIndex(ys, y1)
			} else {
				y2 = ys[gy] + r + wext
				endY = upperBoundIndex(ys, y2)
			}
		}
		if prevDir != DirUnknown {
			// approaching the destination extends the window ahead
			next := stepIdx(MazeIdx{X: gx, Y: gy, Z: gz}, dir)
			if e.isDst(next) {
				if dir == DirNorth {
					y2 = ys[next.Y] + r + wext
					endY = upperBoundIndex(ys, y2)
				} else {
					y1 = ys[next.Y] - r - wext
					startY = lowerBoundIndex(ys, y1)
				}
			}
		}
	} else {
		y1, y2 = ys[gy]-r, ys[gy]+r
		startY, endY = lowerBoundIndex(ys, y1), upperBoundIndex(ys, y2)
		startX, endX = gx, gx
		x1, x2 = xs[gx], xs[gx]
		if prevDir == DirUnknown || prevDir != dir {
			if dir == DirEast {
				x1 = xs[gx] - r - wext
				startX = lowerBoundIndex(xs, x1)
			} else {
				x2 = xs[gx] + r + wext
				endX = upperBoundIndex(xs, x2)
			}
		}
		if prevDir != DirUnknown {
			next := stepIdx(MazeIdx{X: gx, Y: gy, Z: gz}, dir)
			if e.isDst(next) {
				if dir == DirEast {
					x2 = xs[next.X] + r + wext
					endX = upperBoundIndex(xs, x2)
				} else {
					x1 = xs[next.X] - r - wext
					startX = lowerBoundIndex(xs, x1)
				}
			}
		}
	}

	if xs[startX] < x1 {
		startX++
	}
	if xs[endX] > x2 {
		endX--
	}
	if ys[startY] < y1 {
		startY++
	}
	if ys[endY] > y2 {
		endY--
	}
	if startX > endX || startY > endY {
		// inverted bounds mean the rule window excludes its own edge,
		// which only a broken width/spacing setup can produce
		panic(fmt.Sprintf("maze: invalid NDR rule-window bounds at (%d,%d,%d) dir %v", gx, gy, gz, dir))
	}

	for x := startX; x <= endX; x++ {
		for y := startY; y <= endY; y++ {
			if e.g.HasShapeCost(x, y, gz, dir) {
				cost += e.cfg.ShapeCost * el
			}
			if e.g.HasDRCCost(x, y, gz, dir) {
				cost += e.cfg.DRCCost * el
			}
			if e.g.HasMarkerCost(x, y, gz, dir) {
				cost += e.cfg.MarkerCost * el
			}
			if e.g.IsBlocked(x, y, gz, dir) {
				cost += e.cfg.BlockCost * layer.MinWidth * 20
			}
		}
	}

	return cost
}

// viaCostsNDR prices a vertical move under a non-default rule. With no
// preferred via the default-rule cost applies. With one, the via's
// neighborhood is either checked against recorded obstruction shapes
// (when the graph supports region queries) or accumulated over the rule
// window, clipped by the previous travel direction.
func (e *Engine) viaCostsNDR(gx, gy, gz int, dir, prevDir Dir, layer *tech.Layer) int64 {
	ndr := e.cfg.NDR
	bottomZ := gz
	if dir == DirDown {
		bottomZ = gz - 1
	}
	if ndr.PrefVia(bottomZ) == nil {
		return e.costs(gx, gy, gz, dir, layer)
	}
	if rq, ok := e.g.(RegionQuerier); ok {
		return e.viaCostsNDRShapes(rq, gx, gy, gz, dir, layer, bottomZ)
	}

	layerWidth := max64(layer.MinWidth, ndr.Width(gz))
	sp := max64(ndr.Spacing(gz), e.minSpacingValue(layer, layerWidth, layer.MinWidth, 0))
	r := layerWidth/2 + sp + layer.MinWidth/2 - 1
	el := e.g.EdgeLength(gx, gy, gz, dir)
	cost := el

	xs, ys := e.g.XCoords(), e.g.YCoords()
	x1, x2 := xs[gx]-r, xs[gx]+r
	y1, y2 := ys[gy]-r, ys[gy]+r
	startX, endX := lowerBoundIndex(xs, x1), upperBoundIndex(xs, x2)
	startY, endY := lowerBoundIndex(ys, y1), upperBoundIndex(ys, y2)

	if e.g.HasShapeCost(gx, gy, gz, dir) {
		cost += e.cfg.ShapeCost * el
	}
	if e.g.HasDRCCost(gx, gy, gz, dir) {
		cost += e.cfg.DRCCost * el
	}
	if e.g.HasMarkerCost(gx, gy, gz, dir) {
		cost += e.cfg.MarkerCost * el
	}
	if e.g.IsBlocked(gx, gy, gz, dir) {
		cost += e.cfg.BlockCost * layer.MinWidth * 20
	}

	if xs[startX] < x1 {
		startX++
	}
	if xs[endX] > x2 {
		endX--
	}
	if ys[startY] < y1 {
		startY++
	}
	if ys[endY] > y2 {
		endY--
	}
	// cells behind the frontier were already priced by the planar run
	switch prevDir {
	case DirNorth:
		endY = gy - 1
	case DirSouth:
		startY = gy + 1
	case DirEast:
		startX = gx + 1
	case DirWest:
		endX = gx - 1
	}

	for x := startX; x <= endX; x++ {
		for y := startY; y <= endY; y++ {
			if e.g.HasShapeCost(x, y, gz, DirUnknown) {
				cost += e.cfg.ShapeCost * el
			}
			if e.g.HasDRCCost(x, y, gz, DirUnknown) {
				cost += e.cfg.DRCCost * el
			}
			if e.g.HasMarkerCost(x, y, gz, DirUnknown) {
				cost += e.cfg.MarkerCost * el
			}
		}
	}

	return cost
}

// viaCostsNDRShapes checks the via's metal enclosures, bloated by the
// governing spacing, directly against recorded obstructions.
func (e *Engine) viaCostsNDRShapes(rq RegionQuerier, gx, gy, gz int, dir Dir, layer *tech.Layer, bottomZ int) int64 {
	ndr := e.cfg.NDR
	el := e.g.EdgeLength(gx, gy, gz, dir)
	cost := e.costs(gx, gy, gz, dir, layer)
	if cost > el {
		// per-edge flags already fired; the shape probe adds nothing
		return cost
	}

	defVia := e.rules.DefaultViaDef(bottomZ)
	via := ndr.PrefVia(bottomZ)
	if via == nil {
		via = defVia
	}
	if via == nil || defVia == nil {
		return cost
	}
	bottomLayer := layer
	if dir == DirDown {
		bottomLayer = e.rules.Layer(layer.Num - 2)
	}
	pt := e.g.Point(gx, gy)

	sp := max64(ndr.Spacing(bottomZ), e.minSpacingValue(bottomLayer,
		via.Layer1.Width(), defVia.Layer1.Width(), defVia.Layer1.Length()))
	box := via.Layer1.Bloat(sp - 1).ShiftBy(pt.X, pt.Y)
	if rq.QueryRegion(box, bottomLayer.Num) {
		cost += e.cfg.ShapeCost * el

		return cost
	}

	topLayer := e.rules.Layer(bottomLayer.Num + 2)
	sp = max64(ndr.Spacing(bottomZ+1), e.minSpacingValue(topLayer,
		via.Layer2.Width(), defVia.Layer2.Width(), defVia.Layer2.Length()))
	box = via.Layer2.Bloat(sp - 1).ShiftBy(pt.X, pt.Y)
	if rq.QueryRegion(box, topLayer.Num) {
		cost += e.cfg.ShapeCost * el
	}

	return cost
}

// minSpacingValue resolves the layer's minimum spacing for the given
// widths and parallel run length. An unknown constraint kind is a
// technology setup bug and aborts the process.
func (e *Engine) minSpacingValue(layer *tech.Layer, width1, width2, prl int64) int64 {
	switch con := layer.MinSpacing.(type) {
	case tech.SpacingFixed:
		return con.Min
	case tech.SpacingTablePRL:
		return con.Find(width1, prl)
	case tech.SpacingTableTwoWidth:
		return con.Find(width1, width2, prl)
	default:
		panic(fmt.Sprintf("maze: layer %d has no supported minimum spacing constraint", layer.Num))
	}
}

// lowerBoundIndex returns the index of the first track >= v, clamped to
// the last track.
func lowerBoundIndex(tracks []int64, v int64) int {
	i := sort.Search(len(tracks), func(i int) bool { return tracks[i] >= v })
	if i == len(tracks) {
		i--
	}

	return i
}

// upperBoundIndex returns the index of the last track <= v, clamped to
// the first track.
func upperBoundIndex(tracks []int64, v int64) int {
	i := sort.Search(len(tracks), func(i int) bool { return tracks[i] > v }) - 1
	if i < 0 {
		i = 0
	}

	return i
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
