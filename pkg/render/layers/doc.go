// Package layers collects rendered SVG elements into one document per layer.
//
// # Overview
//
// A [Store] maps layer names ("water", "medical", "text", ...) to SVG
// documents. Documents are created the first time a layer is written and all
// share the viewBox fixed when the store was built with [New].
//
// Every element handed to [Store.Add] is written twice: once to its own layer
// and once to the composite layer [Composite] ("map"), which therefore holds
// the whole picture in paint order. Elements added directly to the composite
// are written once.
//
// # Output
//
// [Store.Encode] serializes a single layer; [Store.Save] writes every layer to
// <dir>/<layer>.svg in one pass and stops at the first failure. Layers are
// always visited in sorted name order.
//
//	store := layers.New(layers.FromBounds(bounds, 300))
//	store.Add("water", shape.Polygon(origin, ring, s))
//	if err := store.Save("out"); err != nil {
//	    return err
//	}
//
// A Store is not safe for concurrent use; a run owns its store exclusively.
package layers
