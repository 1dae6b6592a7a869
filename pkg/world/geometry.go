package world

// Kind identifies how a geometry's rings are interpreted.
type Kind int

const (
	// KindUnsupported is any geometry tag the renderer does not draw.
	// The raw tag is kept in Geometry.Tag.
	KindUnsupported Kind = iota
	// KindPoint is a single position: one ring of exactly one point.
	KindPoint
	// KindPolygon is one or more closed rings.
	KindPolygon
)

// Tags used by the worldmap format.
const (
	TagPoint      = "Point"
	TagPolygon    = "Polygon"
	TagLineString = "LineString"
)

// ParseKind maps an input tag to a Kind. Unknown tags map to KindUnsupported;
// KnownTag tells callers that want to reject them apart.
func ParseKind(tag string) Kind {
	switch tag {
	case TagPoint:
		return KindPoint
	case TagPolygon:
		return KindPolygon
	default:
		return KindUnsupported
	}
}

// KnownTag reports whether tag is one of the tags the worldmap format
// defines, including the ones that render nothing.
func KnownTag(tag string) bool {
	switch tag {
	case TagPoint, TagPolygon, TagLineString:
		return true
	}
	return false
}

// String returns the canonical tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return TagPoint
	case KindPolygon:
		return TagPolygon
	default:
		return "Unsupported"
	}
}

// Geometry is a kind plus its coordinate rings.
type Geometry struct {
	Kind  Kind   `json:"-"`
	Tag   string `json:"type"`
	Rings []Ring `json:"coordinates"`
}

// NewGeometry builds a geometry from its input tag, deriving the kind.
func NewGeometry(tag string, rings ...Ring) Geometry {
	return Geometry{Kind: ParseKind(tag), Tag: tag, Rings: rings}
}
