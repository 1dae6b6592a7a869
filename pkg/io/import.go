package io

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/world"
)

// Format identifies an input encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything that is not
// .json is treated as XML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatXML
}

// ReadOption configures decoding.
type ReadOption func(*reader)

type reader struct {
	strict bool
}

// WithStrict rejects geometries that would render nothing (LineString and
// unknown tags) instead of decoding them as unsupported.
func WithStrict() ReadOption { return func(r *reader) { r.strict = true } }

func newReader(opts []ReadOption) reader {
	var r reader
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type xmlWorld struct {
	Cells []xmlCell `xml:"cell"`
}

type xmlCell struct {
	X        int          `xml:"x,attr"`
	Y        int          `xml:"y,attr"`
	Features []xmlFeature `xml:"feature"`
}

type xmlFeature struct {
	Geometry   *xmlGeometry   `xml:"geometry"`
	Properties *xmlProperties `xml:"properties"`
}

type xmlGeometry struct {
	Type        string           `xml:"type,attr"`
	Coordinates []xmlCoordinates `xml:"coordinates"`
}

type xmlCoordinates struct {
	Points []xmlPoint `xml:"point"`
}

type xmlPoint struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
}

type xmlProperties struct {
	Property []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ReadXML decodes a worldmap XML document from r.
//
// ReadXML returns an INVALID_INPUT error if the XML is malformed, if a
// feature has no geometry or a geometry has no type, or (with [WithStrict])
// if a geometry would render nothing. ReadXML does not close r.
func ReadXML(r io.Reader, opts ...ReadOption) (*world.World, error) {
	rd := newReader(opts)

	var data xmlWorld
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode xml")
	}

	w := &world.World{Cells: make([]world.Cell, len(data.Cells))}
	for i, c := range data.Cells {
		cell := world.Cell{X: c.X, Y: c.Y, Features: make([]world.Feature, len(c.Features))}
		for j, f := range c.Features {
			if f.Geometry == nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "cell (%d,%d) feature %d: missing geometry", c.X, c.Y, j)
			}
			g, err := rd.geometry(f.Geometry.Type, xmlRings(f.Geometry.Coordinates))
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d) feature %d: %w", c.X, c.Y, j, err)
			}
			cell.Features[j] = world.Feature{Geometry: g, Properties: xmlProps(f.Properties)}
		}
		w.Cells[i] = cell
	}
	return w, nil
}

func xmlRings(coords []xmlCoordinates) []world.Ring {
	rings := make([]world.Ring, len(coords))
	for i, c := range coords {
		ring := make(world.Ring, len(c.Points))
		for j, p := range c.Points {
			ring[j] = world.Point{X: p.X, Y: p.Y}
		}
		rings[i] = ring
	}
	return rings
}

// xmlProps keeps the absent/empty distinction: no <properties> element
// yields nil.
func xmlProps(p *xmlProperties) world.Properties {
	if p == nil {
		return nil
	}
	props := make(world.Properties, len(p.Property))
	for i, prop := range p.Property {
		props[i] = world.Property{Name: prop.Name, Value: prop.Value}
	}
	return props
}

func (r reader) geometry(tag string, rings []world.Ring) (world.Geometry, error) {
	if tag == "" {
		return world.Geometry{}, errors.New(errors.ErrCodeInvalidInput, "geometry has no type")
	}
	g := world.NewGeometry(tag, rings...)
	if r.strict && g.Kind == world.KindUnsupported {
		if world.KnownTag(tag) {
			return world.Geometry{}, errors.New(errors.ErrCodeInvalidInput, "geometry type %q is not rendered", tag)
		}
		return world.Geometry{}, errors.New(errors.ErrCodeInvalidInput, "unknown geometry type %q", tag)
	}
	return g, nil
}

// ReadJSON decodes a JSON world from r. Validation matches [ReadXML].
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...ReadOption) (*world.World, error) {
	rd := newReader(opts)

	var w world.World
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}

	for i := range w.Cells {
		c := &w.Cells[i]
		for j := range c.Features {
			f := &c.Features[j]
			g, err := rd.geometry(f.Geometry.Tag, f.Geometry.Rings)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d) feature %d: %w", c.X, c.Y, j, err)
			}
			f.Geometry = g
		}
	}
	return &w, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format, opts ...ReadOption) (*world.World, error) {
	switch format {
	case FormatXML:
		return ReadXML(r, opts...)
	case FormatJSON:
		return ReadJSON(r, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
	}
}

// Decode decodes an in-memory document.
func Decode(data []byte, format Format, opts ...ReadOption) (*world.World, error) {
	return Read(bytes.NewReader(data), format, opts...)
}

// ReadFile reads the whole file at path. A missing file is reported as
// FILE_NOT_FOUND, any other failure as IO_ERROR.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return data, nil
}

// ImportWorld reads and decodes the file at path, choosing the format from
// its extension.
func ImportWorld(path string, opts ...ReadOption) (*world.World, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := Decode(data, FormatFromPath(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}
