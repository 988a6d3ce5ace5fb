package maze

import "testing"

// TestBacktraceBuffer_FillAndEvict walks the buffer through its whole
// lifecycle: while filling, shiftAdd must return DirUnknown; once full,
// each add must evict the oldest recorded direction in order.
func TestBacktraceBuffer_FillAndEvict(t *testing.T) {
	var b backtraceBuffer
	seq := []Dir{DirNorth, DirEast, DirUp, DirSouth, DirWest, DirDown}

	// first bufferSize adds only fill
	for i := 0; i < bufferSize; i++ {
		if tail := b.shiftAdd(seq[i]); tail != DirUnknown {
			t.Fatalf("shiftAdd #%d evicted %v; want DirUnknown while filling", i, tail)
		}
		if got := b.last(); got != seq[i] {
			t.Fatalf("last() = %v after adding %v", got, seq[i])
		}
	}

	// further adds evict in insertion order
	for i := bufferSize; i < len(seq); i++ {
		if tail := b.shiftAdd(seq[i]); tail != seq[i-bufferSize] {
			t.Fatalf("shiftAdd #%d evicted %v; want %v", i, tail, seq[i-bufferSize])
		}
	}
}

// TestBacktraceBuffer_Shift checks that shift exposes directions
// newest-first, the order path traceback consumes them in.
func TestBacktraceBuffer_Shift(t *testing.T) {
	var b backtraceBuffer
	b.shiftAdd(DirNorth)
	b.shiftAdd(DirEast)
	b.shiftAdd(DirUp)

	want := []Dir{DirUp, DirEast, DirNorth, DirUnknown}
	for i, w := range want {
		if got := b.last(); got != w {
			t.Fatalf("drain step %d = %v; want %v", i, got, w)
		}
		b.shift()
	}
}

// TestDir_Reverse pins the arithmetic reversal over all values.
func TestDir_Reverse(t *testing.T) {
	pairs := map[Dir]Dir{
		DirUnknown: DirUnknown,
		DirNorth:   DirSouth,
		DirEast:    DirWest,
		DirUp:      DirDown,
	}
	for d, r := range pairs {
		if d.Reverse() != r {
			t.Errorf("%v.Reverse() = %v; want %v", d, d.Reverse(), r)
		}
		if r.Reverse() != d {
			t.Errorf("%v.Reverse() = %v; want %v", r, r.Reverse(), d)
		}
	}
}
