package maze

import "github.com/gridwire/mazeroute/tech"

// BoundaryViaPenalty is a HeuristicAdjuster that discourages the search
// from approaching a single-point destination at an offset which would
// force a forbidden-length via stack next to it. Some processes forbid
// short via-to-via runs; when a wavefront lands one such run away from a
// boundary pin, every way of finishing the connection (via up, via down,
// or a wrong-way jog) incurs a violation, so the estimate is inflated to
// steer the search elsewhere.
//
// The penalty activates late in rip-up and reroute, once routing has
// mostly converged and such near-misses dominate the remaining work.
type BoundaryViaPenalty struct {
	// MinIter is the first rip-up iteration the penalty applies to.
	MinIter int
}

var _ HeuristicAdjuster = BoundaryViaPenalty{}

// EstPenalty implements HeuristicAdjuster.
func (p BoundaryViaPenalty) EstPenalty(q AdjustQuery) int64 {
	minIter := p.MinIter
	if minIter == 0 {
		minIter = 30
	}
	if q.Iter < minIter || q.RipupMode != 0 {
		return 0
	}
	// only single-point destinations on the approach layer qualify
	if q.DstLo != q.DstHi || q.Next.Z != q.DstLo.Z {
		return 0
	}

	layer := q.Rules.Layer(q.Graph.LayerNum(q.Next.Z))
	nextPt := q.Graph.Point(q.Next.X, q.Next.Y)
	dstPt := q.Graph.Point(q.DstLo.X, q.DstLo.Y)

	// The gap runs perpendicular to the preferred direction: closing it
	// needs either a wrong-way jog or a via detour on a neighbor layer.
	var gap int64
	horizontal := false
	if layer.Dir == tech.Horizontal {
		gap = abs64(nextPt.Y - dstPt.Y)
	} else {
		gap = abs64(nextPt.X - dstPt.X)
		horizontal = true
	}
	if gap == 0 {
		return 0
	}

	// Both escape directions must be ruled out: the via pair toward the
	// layer below is forbidden (or no routing layer exists below), and
	// likewise toward the layer above.
	downBlocked := q.Rules.IsVia2ViaForbiddenLen(q.Next.Z, false, false, horizontal, gap, q.NDR) ||
		layer.Num-2 < q.Rules.BottomRoutingLayerNum()
	upBlocked := q.Rules.IsVia2ViaForbiddenLen(q.Next.Z, true, true, horizontal, gap, q.NDR) ||
		layer.Num+2 > q.Rules.TopLayerNum()
	if downBlocked && upBlocked {
		return layer.Pitch * q.DRCCost * 20
	}

	return 0
}
