package world

import "fmt"

// Point is an integer position. Inside a cell it is cell-local; after
// [Point.Add] with a cell origin it is in world space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from base to p, so that base.Add(p.Sub(base)) == p.
func (p Point) Sub(base Point) Point {
	return Point{X: p.X - base.X, Y: p.Y - base.Y}
}

// String formats the point as "x,y", the form used in SVG point lists.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Ring is an ordered sequence of points. For polygons the ring is implicitly
// closed; the first and last point need not coincide.
type Ring []Point
