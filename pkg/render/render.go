package render

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/render/layers"
	"github.com/matzehuels/worldsvg/pkg/render/shape"
	"github.com/matzehuels/worldsvg/pkg/render/style"
	"github.com/matzehuels/worldsvg/pkg/world"
)

// BackgroundLayer holds the optional background rectangle.
const BackgroundLayer = layers.Background

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	cellSize   int
	classifier *style.Classifier
	background bool
	store      *layers.Store
	stats      Stats
}

// WithCellSize sets the world-space edge length of a cell (default 300).
func WithCellSize(size int) Option { return func(r *renderer) { r.cellSize = size } }

// WithClassifier replaces the built-in classifier.
func WithClassifier(c *style.Classifier) Option { return func(r *renderer) { r.classifier = c } }

// WithBackground draws a white rectangle from the origin to the far corner
// of the bounds into the "background" layer before any feature.
func WithBackground() Option { return func(r *renderer) { r.background = true } }

// Stats summarizes one render pass.
type Stats struct {
	Bounds     world.Bounds // grid bounds of the world
	Cells      int          // cells visited
	Features   int          // features visited
	Primitives int          // elements added to the store
	Skipped    int          // geometries of unsupported kinds
	Unlabeled  int          // points without a label
}

// Render draws w into a new layer store.
func Render(w *world.World, opts ...Option) (*layers.Store, Stats, error) {
	r := renderer{cellSize: world.DefaultCellSize}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidateCellSize(r.cellSize); err != nil {
		return nil, Stats{}, err
	}
	if r.classifier == nil {
		r.classifier = style.NewClassifier()
	}

	r.stats.Bounds = world.ComputeBounds(w.Cells)
	vb := layers.FromBounds(r.stats.Bounds, r.cellSize)
	r.store = layers.New(vb)

	if r.background {
		r.add(BackgroundLayer, shape.Background(vb.MaxX, vb.MaxY))
	}

	for i := range w.Cells {
		if err := r.renderCell(&w.Cells[i]); err != nil {
			return nil, r.stats, err
		}
	}
	return r.store, r.stats, nil
}

func (r *renderer) add(layer string, el *etree.Element) {
	r.store.Add(layer, el)
	r.stats.Primitives++
}

func (r *renderer) renderCell(c *world.Cell) error {
	r.stats.Cells++
	origin := c.Origin(r.cellSize)
	for i := range c.Features {
		r.stats.Features++
		f := &c.Features[i]
		if err := r.renderGeometry(origin, f.Geometry, f.Properties); err != nil {
			return fmt.Errorf("cell (%d,%d) feature %d: %w", c.X, c.Y, i, err)
		}
	}
	return nil
}

func (r *renderer) renderGeometry(origin world.Point, g world.Geometry, props world.Properties) error {
	d := r.classifier.Decide(g.Kind, props)
	switch g.Kind {
	case world.KindPolygon:
		for _, ring := range g.Rings {
			if len(ring) == 0 {
				return errors.New(errors.ErrCodeInvalidGeometry, "polygon ring has no points")
			}
			r.add(d.Style.Layer, shape.Polygon(origin, ring, d.Style))
		}
	case world.KindPoint:
		for _, ring := range g.Rings {
			if len(ring) != 1 {
				return errors.New(errors.ErrCodeInvalidGeometry, "point ring has %d points, want 1", len(ring))
			}
			if !d.Draw {
				r.stats.Unlabeled++
				continue
			}
			r.add(d.Style.Layer, shape.Label(origin, ring[0], d.Label))
		}
	default:
		r.stats.Skipped++
	}
	return nil
}
