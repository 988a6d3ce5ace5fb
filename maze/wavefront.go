package maze

import (
	"container/heap"
)

// WavefrontGrid is one candidate search state: a cell on the expanding
// wavefront together with everything the cost model needs to price the
// next move. States are owned exclusively by the open set until popped
// or discarded; a popped state is never reinserted.
type WavefrontGrid struct {
	idx MazeIdx

	// pathCost accumulates the cost of the walked path; cost adds the
	// completion estimate and drives heap ordering.
	pathCost int64
	cost     int64

	// vLengthX/vLengthY hold the run length since the previous via along
	// each axis (noLength before the first via); tLength holds the run
	// since the last same-layer bend. Both feed forbidden-length checks.
	vLengthX  int64
	vLengthY  int64
	tLength   int64
	prevViaUp bool

	// layerPathArea accumulates metal area on the current layer run,
	// seeded with the layer's minimum-area constraint for zero-length
	// segments and reset across vias.
	layerPathArea int64

	// dist is the Manhattan distance from the caller's center point,
	// used only as a deterministic tie-break.
	dist int64

	buffer backtraceBuffer
	seq    uint64
}

// Idx returns the state's grid cell.
func (g *WavefrontGrid) Idx() MazeIdx { return g.idx }

// PathCost returns the accumulated path cost.
func (g *WavefrontGrid) PathCost() int64 { return g.pathCost }

// Cost returns the estimated total cost (path cost + estimate).
func (g *WavefrontGrid) Cost() int64 { return g.cost }

// Dist returns the Manhattan distance from the search's center point.
func (g *WavefrontGrid) Dist() int64 { return g.dist }

// LastDir returns the direction of the state's most recent move, or
// DirUnknown for seed states.
func (g *WavefrontGrid) LastDir() Dir { return g.buffer.last() }

// vLength returns both via-run accumulators.
func (g *WavefrontGrid) vLength() (x, y int64) { return g.vLengthX, g.vLengthY }

// wavefront is the open set: a min-heap of wavefront states ordered by
// estimated total cost, then center distance, then insertion sequence.
// It uses the lazy-decrease-key strategy: duplicates for one cell may
// coexist and stale entries are discarded at pop time by the driver.
type wavefront struct {
	items wavefrontPQ
	seq   uint64
}

// push stamps g with the next insertion sequence number and inserts it.
func (w *wavefront) push(g *WavefrontGrid) {
	g.seq = w.seq
	w.seq++
	heap.Push(&w.items, g)
}

// pop removes and returns the minimum-cost state.
func (w *wavefront) pop() *WavefrontGrid {
	return heap.Pop(&w.items).(*WavefrontGrid)
}

// empty reports whether the open set has no states.
func (w *wavefront) empty() bool { return len(w.items) == 0 }

// cleanup discards all states, retaining capacity for the next search.
func (w *wavefront) cleanup() {
	for i := range w.items {
		w.items[i] = nil
	}
	w.items = w.items[:0]
	w.seq = 0
}

// wavefrontPQ implements heap.Interface. Less defines the deterministic
// ordering contract: lower estimated total cost wins; ties fall to the
// smaller center distance, then to the earlier insertion sequence.
type wavefrontPQ []*WavefrontGrid

func (pq wavefrontPQ) Len() int { return len(pq) }

func (pq wavefrontPQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

func (pq wavefrontPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *wavefrontPQ) Push(x interface{}) { *pq = append(*pq, x.(*WavefrontGrid)) }

func (pq *wavefrontPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
