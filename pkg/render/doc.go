// Package render draws a [world.World] into layered SVG documents.
//
// # Overview
//
// [Render] is the core of worldsvg. It computes the world's bounds, builds a
// [layers.Store] sized to them, and walks the model depth-first in input
// order (cell, feature, geometry, ring). For every geometry it asks the
// [style.Classifier] for a decision and hands the resulting [shape] element
// to the store, which writes it to its semantic layer and to the composite
// "map" layer:
//
//	store, stats, err := render.Render(w,
//	    render.WithCellSize(300),
//	    render.WithClassifier(style.NewClassifier(extraRules...)),
//	)
//	if err != nil {
//	    return err
//	}
//	err = store.Save("out")
//
// Paint order inside a layer is traversal order; nothing is re-sorted.
//
// # Errors
//
// The decoder is trusted to have produced a well-formed model. If it has not
// (a point ring without exactly one point, a polygon ring with no points) the
// run fails with an INVALID_GEOMETRY error rather than drawing a misleading
// picture. Geometries of unsupported kinds are visited and counted in
// [Stats.Skipped] but draw nothing.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert an SVG document to PDF/PNG with the external
// rsvg-convert tool (from librsvg).
//
// [world.World]: github.com/matzehuels/worldsvg/pkg/world.World
// [layers.Store]: github.com/matzehuels/worldsvg/pkg/render/layers.Store
// [style.Classifier]: github.com/matzehuels/worldsvg/pkg/render/style.Classifier
// [shape]: github.com/matzehuels/worldsvg/pkg/render/shape
package render
