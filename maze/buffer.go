package maze

// Direction-history packing. Each direction occupies dirBits bits and
// the buffer holds bufferSize of them, newest in the low bits. The
// bounded size is load-bearing: it caps per-state memory so millions of
// wavefront states stay cheap, at the price of committing directions
// that rotate out of the window into the per-cell visitation record.
const (
	dirBits    = 3
	dirMask    = 1<<dirBits - 1
	bufferSize = 4
	bufferBits = dirBits * bufferSize
	bufferMask = 1<<bufferBits - 1
)

// backtraceBuffer is a fixed-capacity circular buffer of the most recent
// travel directions, bit-packed into a single word.
type backtraceBuffer uint16

// shiftAdd pushes d as the newest direction and returns the direction
// that rotated out of the window (DirUnknown while the buffer is still
// filling).
func (b *backtraceBuffer) shiftAdd(d Dir) Dir {
	tail := Dir((*b >> ((bufferSize - 1) * dirBits)) & dirMask)
	*b = (*b<<dirBits | backtraceBuffer(d)) & bufferMask

	return tail
}

// last decodes the newest direction without removing it.
func (b backtraceBuffer) last() Dir {
	return Dir(b & dirMask)
}

// shift drops the newest direction, exposing the one before it.
func (b *backtraceBuffer) shift() {
	*b >>= dirBits
}
