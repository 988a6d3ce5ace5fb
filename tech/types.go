// Package tech defines core types for routing-layer technology data.
package tech

import (
	"errors"
)

// Sentinel errors for technology construction.
var (
	// ErrBadLenRange indicates a forbidden-length range with Lo > Hi.
	ErrBadLenRange = errors.New("tech: forbidden length range must have Lo <= Hi")
)

// PrefDir selects a layer's preferred routing direction.
type PrefDir int

const (
	// Horizontal layers route east-west on their tracks.
	Horizontal PrefDir = iota
	// Vertical layers route north-south on their tracks.
	Vertical
)

// Rect is an axis-aligned rectangle in database units.
// Coordinates are inclusive of XLo/YLo and exclusive of nothing: a Rect
// with XLo == XHi is a degenerate zero-width shape.
type Rect struct {
	XLo, YLo, XHi, YHi int64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int64 { return r.XHi - r.XLo }

// Length returns the vertical extent of r.
func (r Rect) Length() int64 { return r.YHi - r.YLo }

// Bloat returns r grown by d on every side.
func (r Rect) Bloat(d int64) Rect {
	return Rect{XLo: r.XLo - d, YLo: r.YLo - d, XHi: r.XHi + d, YHi: r.YHi + d}
}

// ShiftBy returns r translated by (dx, dy).
func (r Rect) ShiftBy(dx, dy int64) Rect {
	return Rect{XLo: r.XLo + dx, YLo: r.YLo + dy, XHi: r.XHi + dx, YHi: r.YHi + dy}
}

// Intersects reports whether r and o share any area (touching counts).
func (r Rect) Intersects(o Rect) bool {
	return r.XLo <= o.XHi && o.XLo <= r.XHi && r.YLo <= o.YHi && o.YLo <= r.YHi
}

// SpacingRule is the minimum-spacing constraint attached to a layer.
// Exactly three kinds exist; the cost model dispatches on the concrete
// type and treats any other value as a fatal configuration error.
type SpacingRule interface {
	// spacingRule restricts implementations to this package, keeping the
	// constraint taxonomy closed the way the source technology model is.
	spacingRule()
}

// SpacingFixed is a single fixed minimum spacing value.
type SpacingFixed struct {
	Min int64
}

func (SpacingFixed) spacingRule() {}

// SpacingTablePRL is a width × parallel-run-length spacing table.
// WidthThresholds and PRLThresholds must be ascending; Values[i][j] is
// the spacing for the largest WidthThresholds[i] <= width and largest
// PRLThresholds[j] <= prl (row/column 0 when none qualifies).
type SpacingTablePRL struct {
	WidthThresholds []int64
	PRLThresholds   []int64
	Values          [][]int64
}

func (SpacingTablePRL) spacingRule() {}

// Find returns the table spacing for the given wire width and parallel
// run length.
func (t SpacingTablePRL) Find(width, prl int64) int64 {
	i := thresholdIndex(t.WidthThresholds, width)
	j := thresholdIndex(t.PRLThresholds, prl)

	return t.Values[i][j]
}

// SpacingTableTwoWidth is a two-width spacing table: the spacing between
// two parallel wires depends on both wire widths. Widths must be
// ascending; Values[i][j] is the spacing between a wire of the i-th and
// a wire of the j-th width class.
type SpacingTableTwoWidth struct {
	Widths []int64
	Values [][]int64
}

func (SpacingTableTwoWidth) spacingRule() {}

// Find returns the table spacing for the given pair of wire widths.
// The prl argument is accepted for interface parity with PRL tables but
// does not select a row here.
func (t SpacingTableTwoWidth) Find(width1, width2, prl int64) int64 {
	_ = prl
	i := thresholdIndex(t.Widths, width1)
	j := thresholdIndex(t.Widths, width2)

	return t.Values[i][j]
}

// thresholdIndex returns the index of the largest threshold <= v, or 0
// when v is below every threshold.
func thresholdIndex(thresholds []int64, v int64) int {
	idx := 0
	for i, th := range thresholds {
		if v >= th {
			idx = i
		}
	}

	return idx
}

// Layer describes one routing layer.
type Layer struct {
	// Num is the technology layer number ((z+1)*2 for routing layer z).
	Num int
	// Dir is the preferred routing direction.
	Dir PrefDir
	// Width is the default wire width.
	Width int64
	// MinWidth is the minimum legal wire width.
	MinWidth int64
	// Pitch is the track-to-track distance.
	Pitch int64
	// MinArea is the minimum metal area constraint (0 when absent).
	MinArea int64
	// MinSpacing is the layer's minimum-spacing rule. A nil MinSpacing is
	// a technology setup bug and aborts the first lookup against it.
	MinSpacing SpacingRule
}

// ViaDef describes one via: the metal enclosure shape on the lower layer
// (Layer1), the cut shape, and the enclosure on the upper layer (Layer2),
// all centered on the via origin.
type ViaDef struct {
	Name   string
	Layer1 Rect
	Cut    Rect
	Layer2 Rect
}

// HalfEncArea returns half the enclosure area of the lower (layer1=true)
// or upper metal shape. The search adds it to the path-area accumulator
// when a via starts a new layer run.
func (v *ViaDef) HalfEncArea(layer1 bool) int64 {
	r := v.Layer2
	if layer1 {
		r = v.Layer1
	}

	return r.Width() * r.Length() / 2
}

// NDR is a non-default rule: per-routing-level overrides of wire width,
// spacing, wire extension and preferred via for one net. A zero override
// means "use the layer default". All accessors are bounds-safe so a
// short override slice simply leaves upper levels at their defaults.
type NDR struct {
	Name           string
	Widths         []int64
	Spacings       []int64
	WireExtensions []int64
	PrefVias       []*ViaDef
}

// Width returns the override wire width at routing level z, or 0.
func (n *NDR) Width(z int) int64 {
	if n == nil {
		return 0
	}

	return at(n.Widths, z)
}

// Spacing returns the override spacing at routing level z, or 0.
func (n *NDR) Spacing(z int) int64 {
	if n == nil {
		return 0
	}

	return at(n.Spacings, z)
}

// WireExtension returns the override wire extension at level z, or 0.
func (n *NDR) WireExtension(z int) int64 {
	if n == nil {
		return 0
	}

	return at(n.WireExtensions, z)
}

// PrefVia returns the preferred via whose cut sits between routing
// levels z and z+1, or nil when the default via applies.
func (n *NDR) PrefVia(z int) *ViaDef {
	if n == nil || z < 0 || z >= len(n.PrefVias) {
		return nil
	}

	return n.PrefVias[z]
}

func at(s []int64, i int) int64 {
	if i < 0 || i >= len(s) {
		return 0
	}

	return s[i]
}
