package maze

// stepIdx returns the cell one grid step from i along d.
func stepIdx(i MazeIdx, d Dir) MazeIdx {
	switch d {
	case DirEast:
		i.X++
	case DirWest:
		i.X--
	case DirNorth:
		i.Y++
	case DirSouth:
		i.Y--
	case DirUp:
		i.Z++
	case DirDown:
		i.Z--
	}

	return i
}

// prevStepIdx returns the cell one grid step against d, undoing stepIdx.
func prevStepIdx(i MazeIdx, d Dir) MazeIdx {
	return stepIdx(i, d.Reverse())
}

// isExpandable reports whether the wavefront at curr may step along dir:
// the edge must exist, and the target cell must be neither a source cell
// nor already visited, nor the cell the wavefront just came from.
func (e *Engine) isExpandable(curr *WavefrontGrid, dir Dir) bool {
	if !e.g.HasEdge(curr.idx.X, curr.idx.Y, curr.idx.Z, dir) {
		return false
	}
	next := stepIdx(curr.idx, dir)
	if e.isSrc(next) || e.prevDir(next) != DirUnknown || curr.LastDir() == dir.Reverse() {
		return false
	}

	return true
}

// expand prices the move from curr along dir, derives the successor's
// geometry state, commits the write-ahead tail direction, and pushes the
// successor onto the wavefront.
func (e *Engine) expand(curr *WavefrontGrid, dir Dir, dstLo, dstHi MazeIdx, center Point) {
	next := stepIdx(curr.idx, dir)

	// 1. price the move
	nextEstCost := e.estCost(next, dstLo, dstHi, dir)
	nextPathCost := e.nextPathCost(curr, dir)

	pathWidth := e.rules.Layer(e.g.LayerNum(curr.idx.Z)).Width
	el := e.g.EdgeLength(curr.idx.X, curr.idx.Y, curr.idx.Z, dir)
	nextPt := e.g.Point(next.X, next.Y)
	nextDist := abs64(nextPt.X-center.X) + abs64(nextPt.Y-center.Y)

	// 2. propagate the run length since the previous via
	nextVLengthX, nextVLengthY := curr.vLengthX, curr.vLengthY
	if !dir.IsVia() && curr.vLengthX != noLength && curr.vLengthY != noLength {
		if dir == DirWest || dir == DirEast {
			nextVLengthX += el
		} else {
			nextVLengthY += el
		}
	}

	// 3. propagate the run length since the previous turn
	nextTLength := curr.tLength
	if curr.tLength != noLength {
		nextTLength += el
	}
	if curr.LastDir() != DirUnknown && curr.LastDir() != dir {
		nextTLength = el
	}
	if dir.IsVia() {
		nextTLength = noLength
	}

	// 4. propagate the accumulated metal area on the current layer
	nextArea := curr.layerPathArea + el*pathWidth

	nextGrid := WavefrontGrid{
		idx:           next,
		pathCost:      nextPathCost,
		cost:          nextPathCost + nextEstCost,
		vLengthX:      nextVLengthX,
		vLengthY:      nextVLengthY,
		prevViaUp:     curr.prevViaUp,
		tLength:       nextTLength,
		layerPathArea: nextArea,
		dist:          nextDist,
		buffer:        curr.buffer,
	}
	if dir.IsVia() {
		// a via starts a fresh layer: area restarts from the enclosure
		nextGrid.vLengthX, nextGrid.vLengthY = 0, 0
		nextGrid.tLength = noLength
		if dir == DirUp {
			nextGrid.prevViaUp = false
			nextGrid.layerPathArea = e.rules.HalfViaEncArea(curr.idx.Z, false)
		} else {
			nextGrid.prevViaUp = true
			nextGrid.layerPathArea = e.rules.HalfViaEncArea(next.Z, true)
		}
	}

	// 5. shift dir into the backtrace buffer and commit the evicted tail
	tailDir := nextGrid.buffer.shiftAdd(dir)
	if tailDir != DirUnknown {
		tail := tailIdx(next, &nextGrid)
		if d := e.prevDir(tail); d == DirUnknown || d == tailDir {
			e.setPrevDir(tail, tailDir)
		}
		// on disagreement the committed record wins and this branch's
		// tail entry is dropped; the successor still competes by cost
	}
	e.wf.push(&nextGrid)
}

// expandWavefront tries every direction out of curr in the fixed order
// N, E, S, W, U, D. The order breaks exact cost ties deterministically.
func (e *Engine) expandWavefront(curr *WavefrontGrid, dstLo, dstHi MazeIdx, center Point) {
	for _, dir := range expandDirs {
		if e.isExpandable(curr, dir) {
			e.expand(curr, dir, dstLo, dstHi, center)
		}
	}
}

// tailIdx walks the backtrace buffer from idx back to the cell the
// buffer's oldest entry points at. Unknown entries are no-ops, so a
// partially filled buffer walks only its recorded steps.
func tailIdx(idx MazeIdx, grid *WavefrontGrid) MazeIdx {
	buf := grid.buffer
	for i := 0; i < bufferSize; i++ {
		idx = prevStepIdx(idx, buf.last())
		buf.shift()
	}

	return idx
}
