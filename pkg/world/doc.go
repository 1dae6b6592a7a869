// Package world provides the in-memory model of a tile-based world map.
//
// # Overview
//
// A [World] is an ordered list of [Cell] values. Each cell sits at integer
// grid coordinates and owns an ordered list of [Feature] values; a feature is
// one [Geometry] plus optional [Properties]. Coordinates inside a cell are
// cell-local: they are translated to world space by adding the cell's
// [Cell.Origin], which is the grid position multiplied by a fixed cell size
// ([DefaultCellSize] unless configured otherwise).
//
// The model is produced by a decoder (see pkg/io) and is read-only from then
// on. Rendering walks it in input order and never mutates it.
//
// # Geometry Kinds
//
// Geometry kinds form a closed set:
//
//   - [KindPoint]: exactly one ring holding exactly one point
//   - [KindPolygon]: rings of one or more points, implicitly closed
//   - [KindUnsupported]: anything else (e.g. "LineString"); the raw tag is
//     kept in [Geometry.Tag] and the geometry renders nothing
//
// # Bounds
//
// [ComputeBounds] scans the cells for the min/max grid coordinates. The scan
// is seeded at zero, so the origin is always inside the bounds:
//
//	b := world.ComputeBounds(w.Cells)
//	fmt.Println(b) // x[-3..2] y[-1..4]
package world
