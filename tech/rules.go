package tech

import (
	"fmt"
)

// LenRange is an inclusive forbidden-length interval in database units.
type LenRange struct {
	Lo, Hi int64
}

// Contains reports whether length falls inside the range.
func (r LenRange) Contains(length int64) bool {
	return length >= r.Lo && length <= r.Hi
}

// via2viaKey addresses one forbidden via-to-via table: the routing level
// of the move, the orientations of the previous and current via (down =
// the via's cut is below the level), and the axis of the run between
// them (horizontal = the run is along x).
type via2viaKey struct {
	Z            int
	Down1, Down2 bool
	Horizontal   bool
}

// viaTurnKey addresses one forbidden via-to-turn table.
type viaTurnKey struct {
	Z          int
	Down       bool
	Horizontal bool
}

// Rules aggregates all technology data the search consults. Build it
// once, then share it read-only across concurrent searches.
type Rules struct {
	layers      map[int]*Layer
	defaultVias map[int]*ViaDef

	topLayerNum      int
	bottomRoutingNum int
	via2viaForbidden map[via2viaKey][]LenRange
	viaTurnForbidden map[viaTurnKey][]LenRange
	via2viaNDR       map[*NDR]map[via2viaKey][]LenRange
	viaTurnNDR       map[*NDR]map[viaTurnKey][]LenRange
}

// NewRules returns an empty rule set ready for registration calls.
func NewRules() *Rules {
	return &Rules{
		layers:           make(map[int]*Layer),
		defaultVias:      make(map[int]*ViaDef),
		via2viaForbidden: make(map[via2viaKey][]LenRange),
		viaTurnForbidden: make(map[viaTurnKey][]LenRange),
		via2viaNDR:       make(map[*NDR]map[via2viaKey][]LenRange),
		viaTurnNDR:       make(map[*NDR]map[viaTurnKey][]LenRange),
	}
}

// AddLayer registers a routing layer under its layer number.
func (r *Rules) AddLayer(l *Layer) *Rules {
	r.layers[l.Num] = l
	if l.Num > r.topLayerNum {
		r.topLayerNum = l.Num
	}

	return r
}

// Layer returns the layer registered under num. A lookup for an
// unregistered layer is a technology setup bug and aborts the process.
func (r *Rules) Layer(num int) *Layer {
	l, ok := r.layers[num]
	if !ok {
		panic(fmt.Sprintf("tech: no layer registered for layer number %d", num))
	}

	return l
}

// SetTopLayerNum overrides the highest routable layer number.
func (r *Rules) SetTopLayerNum(num int) *Rules {
	r.topLayerNum = num

	return r
}

// TopLayerNum returns the highest routable layer number.
func (r *Rules) TopLayerNum() int { return r.topLayerNum }

// SetBottomRoutingLayerNum sets the lowest layer routing may use.
func (r *Rules) SetBottomRoutingLayerNum(num int) *Rules {
	r.bottomRoutingNum = num

	return r
}

// BottomRoutingLayerNum returns the lowest layer routing may use.
func (r *Rules) BottomRoutingLayerNum() int { return r.bottomRoutingNum }

// SetDefaultViaDef registers the default via whose cut sits between
// routing levels z and z+1.
func (r *Rules) SetDefaultViaDef(z int, v *ViaDef) *Rules {
	r.defaultVias[z] = v

	return r
}

// DefaultViaDef returns the default via between levels z and z+1, or nil.
func (r *Rules) DefaultViaDef(z int) *ViaDef { return r.defaultVias[z] }

// HalfViaEncArea returns half the enclosure area of the default via at
// routing level z, on the lower (layer1=true) or upper metal. Zero when
// no default via is registered.
func (r *Rules) HalfViaEncArea(z int, layer1 bool) int64 {
	v := r.defaultVias[z]
	if v == nil {
		return 0
	}

	return v.HalfEncArea(layer1)
}

// AddVia2ViaForbiddenLen declares that two vias at routing level z, with
// the given orientations, may not be separated by a run of a length
// inside rng along the given axis. Returns ErrBadLenRange on an inverted
// interval.
func (r *Rules) AddVia2ViaForbiddenLen(z int, down1, down2, horizontal bool, rng LenRange) error {
	if rng.Lo > rng.Hi {
		return ErrBadLenRange
	}
	k := via2viaKey{Z: z, Down1: down1, Down2: down2, Horizontal: horizontal}
	r.via2viaForbidden[k] = append(r.via2viaForbidden[k], rng)

	return nil
}

// AddVia2ViaForbiddenLenNDR declares an NDR-specific override table for
// the same key. When any override exists for an NDR, the default table
// is not consulted for it.
func (r *Rules) AddVia2ViaForbiddenLenNDR(ndr *NDR, z int, down1, down2, horizontal bool, rng LenRange) error {
	if rng.Lo > rng.Hi {
		return ErrBadLenRange
	}
	m := r.via2viaNDR[ndr]
	if m == nil {
		m = make(map[via2viaKey][]LenRange)
		r.via2viaNDR[ndr] = m
	}
	k := via2viaKey{Z: z, Down1: down1, Down2: down2, Horizontal: horizontal}
	m[k] = append(m[k], rng)

	return nil
}

// IsVia2ViaForbiddenLen reports whether a run of the given length along
// the given axis between two vias of the given orientations at level z
// violates a forbidden-length rule. NDR-specific tables, when registered
// for ndr, replace the default table.
func (r *Rules) IsVia2ViaForbiddenLen(z int, down1, down2, horizontal bool, length int64, ndr *NDR) bool {
	k := via2viaKey{Z: z, Down1: down1, Down2: down2, Horizontal: horizontal}
	table := r.via2viaForbidden
	if ndr != nil {
		if m, ok := r.via2viaNDR[ndr]; ok {
			table = m
		}
	}
	for _, rng := range table[k] {
		if rng.Contains(length) {
			return true
		}
	}

	return false
}

// AddViaForbiddenTurnLen declares that a bend adjacent to a via of the
// given orientation at level z may not occur after a run of a length
// inside rng along the given axis.
func (r *Rules) AddViaForbiddenTurnLen(z int, down, horizontal bool, rng LenRange) error {
	if rng.Lo > rng.Hi {
		return ErrBadLenRange
	}
	k := viaTurnKey{Z: z, Down: down, Horizontal: horizontal}
	r.viaTurnForbidden[k] = append(r.viaTurnForbidden[k], rng)

	return nil
}

// AddViaForbiddenTurnLenNDR declares the NDR-specific override.
func (r *Rules) AddViaForbiddenTurnLenNDR(ndr *NDR, z int, down, horizontal bool, rng LenRange) error {
	if rng.Lo > rng.Hi {
		return ErrBadLenRange
	}
	m := r.viaTurnNDR[ndr]
	if m == nil {
		m = make(map[viaTurnKey][]LenRange)
		r.viaTurnNDR[ndr] = m
	}
	k := viaTurnKey{Z: z, Down: down, Horizontal: horizontal}
	m[k] = append(m[k], rng)

	return nil
}

// IsViaForbiddenTurnLen reports whether a bend after a run of the given
// length, adjacent to a via of the given orientation at level z, violates
// a forbidden-turn-length rule.
func (r *Rules) IsViaForbiddenTurnLen(z int, down, horizontal bool, length int64, ndr *NDR) bool {
	k := viaTurnKey{Z: z, Down: down, Horizontal: horizontal}
	table := r.viaTurnForbidden
	if ndr != nil {
		if m, ok := r.viaTurnNDR[ndr]; ok {
			table = m
		}
	}
	for _, rng := range table[k] {
		if rng.Contains(length) {
			return true
		}
	}

	return false
}
