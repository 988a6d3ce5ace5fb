package grid

import (
	"errors"
)

// Sentinel errors returned by New.
var (
	// ErrEmptyGrid indicates an empty track or layer coordinate list.
	ErrEmptyGrid = errors.New("grid: every dimension needs at least one coordinate")

	// ErrUnsortedTracks indicates a coordinate list that is not strictly
	// ascending.
	ErrUnsortedTracks = errors.New("grid: coordinates must be strictly ascending")
)

// Per-edge flag bits. Each cell owns one flag byte per canonical axis
// (east, north, up); moves west, south or down resolve to the canonical
// edge of the neighbor they lead away from.
const (
	flagEdge uint8 = 1 << iota
	flagBlocked
	flagGridCost
	flagShapeCost
	flagDRCCost
	flagMarkerCost
	flagGuide
)

// axes of the canonical edge set
const (
	axisEast = iota
	axisNorth
	axisUp
	axisCount
)
