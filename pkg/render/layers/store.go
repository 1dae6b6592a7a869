package layers

import (
	"fmt"
	"slices"

	"github.com/beevik/etree"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/world"
)

const (
	// Composite is the layer that receives every element.
	Composite = "map"

	// Background holds the optional background rectangle. It never
	// receives features.
	Background = "background"

	// Extension is the file extension of saved layers.
	Extension = "svg"

	svgNamespace = "http://www.w3.org/2000/svg"
)

// ViewBox is the coordinate frame shared by every layer document. The four
// numbers are written to the viewBox attribute in field order.
type ViewBox struct {
	MinX, MinY, MaxX, MaxY int
}

// FromBounds scales grid bounds by the cell size into a ViewBox.
func FromBounds(b world.Bounds, cellSize int) ViewBox {
	s := b.Scale(cellSize)
	return ViewBox{MinX: s.MinX, MinY: s.MinY, MaxX: s.MaxX, MaxY: s.MaxY}
}

func (v ViewBox) String() string {
	return fmt.Sprintf("%d %d %d %d", v.MinX, v.MinY, v.MaxX, v.MaxY)
}

// Store owns the per-layer documents of one run.
type Store struct {
	viewBox ViewBox
	docs    map[string]*etree.Document
	counts  map[string]int
	added   int
}

// New creates an empty store whose documents will use vb.
func New(vb ViewBox) *Store {
	return &Store{
		viewBox: vb,
		docs:    make(map[string]*etree.Document),
		counts:  make(map[string]int),
	}
}

// ViewBox returns the frame shared by all layers.
func (s *Store) ViewBox() ViewBox { return s.viewBox }

// Add appends el to layer and a copy of it to the composite layer.
// The store takes ownership of el.
func (s *Store) Add(layer string, el *etree.Element) {
	for i, name := range fanOut(layer) {
		if i > 0 {
			el = el.Copy()
		}
		s.append(name, el)
	}
	s.added++
}

// fanOut lists the layers one element is written to.
func fanOut(layer string) []string {
	if layer == Composite {
		return []string{Composite}
	}
	return []string{layer, Composite}
}

func (s *Store) append(layer string, el *etree.Element) {
	s.document(layer).Root().AddChild(el)
	s.counts[layer]++
}

// document returns the layer's document, creating it on first use.
func (s *Store) document(layer string) *etree.Document {
	if doc, ok := s.docs[layer]; ok {
		return doc
	}
	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)
	root.CreateAttr("viewBox", s.viewBox.String())
	s.docs[layer] = doc
	return doc
}

// Layers returns the names of all layers written so far, sorted.
func (s *Store) Layers() []string {
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Count returns the number of elements in layer.
func (s *Store) Count(layer string) int { return s.counts[layer] }

// Added returns the number of elements handed to Add.
func (s *Store) Added() int { return s.added }

// Elements returns the elements of layer in paint order.
func (s *Store) Elements(layer string) []*etree.Element {
	doc, ok := s.docs[layer]
	if !ok {
		return nil
	}
	return doc.Root().ChildElements()
}

// Encode serializes layer as an indented SVG document.
func (s *Store) Encode(layer string) ([]byte, error) {
	doc, ok := s.docs[layer]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", layer)
	}
	out := doc.Copy()
	out.Indent(2)
	data, err := out.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layer %s", layer)
	}
	return data, nil
}

// FileName returns the file name a layer is saved under.
func FileName(layer string) string {
	return layer + "." + Extension
}

// Reserved reports whether name is managed by the store itself and may
// not be used as a feature layer.
func Reserved(name string) bool {
	return name == Composite || name == Background
}

// Save writes every layer to dir as <layer>.svg, overwriting existing files.
// It stops at the first failure.
func (s *Store) Save(dir string) error {
	files := make(map[string][]byte, len(s.docs))
	for _, name := range s.Layers() {
		if err := errors.ValidateLayerName(name); err != nil {
			return err
		}
		data, err := s.Encode(name)
		if err != nil {
			return err
		}
		files[FileName(name)] = data
	}
	_, err := WriteFiles(dir, files)
	return err
}

// Summary describes one layer for listings and the preview server.
type Summary struct {
	Name     string `json:"name"`
	Elements int    `json:"elements"`
	File     string `json:"file"`
}

// Summaries returns one Summary per layer, sorted by name.
func (s *Store) Summaries() []Summary {
	names := s.Layers()
	out := make([]Summary, len(names))
	for i, name := range names {
		out[i] = Summary{Name: name, Elements: s.counts[name], File: FileName(name)}
	}
	return out
}
