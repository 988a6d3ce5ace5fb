// Package grid provides the concrete routing-grid model the maze search
// runs on: a three-dimensional lattice of track crossings with one flag
// byte per edge.
//
// What:
//
//   - Grid implements maze.Graph over explicit, possibly non-uniform
//     track coordinate lists, so physical edge lengths follow the real
//     track plan instead of assuming a uniform pitch.
//   - Edges are stored canonically (east, north, up per cell); the
//     westward, southward and downward views of an edge resolve to the
//     same flag byte, so marking an edge once is enough.
//   - Grid also implements maze.RegionQuerier over a flat obstruction
//     list, enabling the shape-based non-default-rule via check.
//
// Why:
//
//   - The search core only consumes interfaces; this package is the
//     default in-memory backing for it. One byte per edge keeps even
//     multi-million-cell grids in cache-friendly flat arrays.
//
// Usage:
//
//	g, err := grid.New(xCoords, yCoords, zHeights)
//	// carve the routable region
//	g.RemoveEdge(3, 0, 0, maze.DirEast)
//	g.SetBlocked(1, 2, 0, maze.DirNorth)
//
// Errors:
//
//   - ErrEmptyGrid: an empty coordinate list.
//   - ErrUnsortedTracks: coordinates not strictly ascending.
//
// Thread safety: build first, then share. Reads are lock-free and safe
// for any number of concurrent searches; mutations are not synchronized.
package grid
