package world

// DefaultCellSize is the edge length of one cell in world units.
const DefaultCellSize = 300

// World is the root of the model: every cell in input order.
type World struct {
	Cells []Cell `json:"cells"`
}

// FeatureCount returns the number of features across all cells.
func (w *World) FeatureCount() int {
	n := 0
	for _, c := range w.Cells {
		n += len(c.Features)
	}
	return n
}

// Cell is one grid tile. X and Y are arbitrary signed grid coordinates.
type Cell struct {
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Features []Feature `json:"features,omitempty"`
}

// Origin returns the world-space position of the cell's local (0,0) for the
// given cell size.
func (c Cell) Origin(size int) Point {
	return Point{X: c.X * size, Y: c.Y * size}
}

// Feature is one drawable entity: a geometry plus optional attributes.
// In JSON an absent attribute list is null and an empty one is [].
type Feature struct {
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Property is one (name, value) attribute.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Properties is an ordered attribute list. Order matters for style
// classification. A nil list (absent) and an empty list both mean
// "no attributes".
type Properties []Property

// Lookup returns the value of the first property called name.
func (ps Properties) Lookup(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
