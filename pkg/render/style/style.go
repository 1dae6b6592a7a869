package style

import (
	"strings"

	"github.com/matzehuels/worldsvg/pkg/world"
)

// None disables a fill or stroke.
const None = "none"

// Layer names produced by the built-in rules.
const (
	LayerPolygons = "polygons"
	LayerWater    = "water"
	LayerMedical  = "medical"
	LayerText     = "text"
)

// Colors used by the built-in rules and labels.
const (
	ColorBlack = "black"
	ColorBlue  = "blue"
	ColorGreen = "green"
	ColorRed   = "red"
)

// LabelProperty is the attribute whose value becomes a point's label.
const LabelProperty = "name_en"

// DefaultStrokeWidth is the outline width used whenever a stroke is drawn.
const DefaultStrokeWidth = 2

// Style is the resolved treatment of one polygon.
type Style struct {
	Fill        string // fill color, or None
	Stroke      string // stroke color, or None
	StrokeWidth int    // only meaningful when Stroke != None
	Layer       string // target layer name
}

// HasStroke reports whether an outline is drawn.
func (s Style) HasStroke() bool {
	return s.Stroke != "" && s.Stroke != None
}

// Default is the style of a polygon that matches no rule.
func Default() Style {
	return Style{
		Fill:        None,
		Stroke:      ColorBlack,
		StrokeWidth: DefaultStrokeWidth,
		Layer:       LayerPolygons,
	}
}

// Patch is a partial style. Nil fields are left unchanged when applied.
type Patch struct {
	Fill   *string `toml:"fill"`
	Stroke *string `toml:"stroke"`
	Layer  *string `toml:"layer"`
}

// Apply returns s with the patch's non-nil fields written over it.
func (p Patch) Apply(s Style) Style {
	if p.Fill != nil {
		s.Fill = *p.Fill
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.Layer != nil {
		s.Layer = *p.Layer
	}
	return s
}

// String lists the set fields as "fill=… stroke=… layer=…".
func (p Patch) String() string {
	var parts []string
	if p.Fill != nil {
		parts = append(parts, "fill="+*p.Fill)
	}
	if p.Stroke != nil {
		parts = append(parts, "stroke="+*p.Stroke)
	}
	if p.Layer != nil {
		parts = append(parts, "layer="+*p.Layer)
	}
	return strings.Join(parts, " ")
}

// Decision is what the renderer needs for one geometry.
type Decision struct {
	Kind  world.Kind
	Style Style  // polygons only
	Label string // points only
	Draw  bool   // false when nothing should be emitted
}
