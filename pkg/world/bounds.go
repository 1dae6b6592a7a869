package world

import "fmt"

// Bounds is the extent of a world in cell grid coordinates.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

// ComputeBounds returns the component-wise min/max of the cell coordinates,
// seeded at zero so the origin is always included. An empty slice yields the
// zero Bounds.
func ComputeBounds(cells []Cell) Bounds {
	var b Bounds
	for _, c := range cells {
		b.MinX = min(b.MinX, c.X)
		b.MaxX = max(b.MaxX, c.X)
		b.MinY = min(b.MinY, c.Y)
		b.MaxY = max(b.MaxY, c.Y)
	}
	return b
}

// Scale returns the bounds multiplied by size, converting grid coordinates
// into world units.
func (b Bounds) Scale(size int) Bounds {
	return Bounds{
		MinX: b.MinX * size, MaxX: b.MaxX * size,
		MinY: b.MinY * size, MaxY: b.MaxY * size,
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("x[%d..%d] y[%d..%d]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}
