package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/io"
	"github.com/matzehuels/worldsvg/pkg/observability"
	"github.com/matzehuels/worldsvg/pkg/render"
	"github.com/matzehuels/worldsvg/pkg/render/layers"
	"github.com/matzehuels/worldsvg/pkg/world"
)

// Decode parses input according to the options' path extension and strict
// setting.
func Decode(data []byte, opts Options) (*world.World, error) {
	var readOpts []io.ReadOption
	if opts.Strict {
		readOpts = append(readOpts, io.WithStrict())
	}
	return io.Decode(data, io.FormatFromPath(opts.InputPath), readOpts...)
}

// Render draws w and encodes every layer in every requested format.
func Render(ctx context.Context, w *world.World, opts Options) (*Result, error) {
	hooks := observability.Pipeline()

	hooks.OnRenderStart(ctx, len(w.Cells))
	start := time.Now()
	store, stats, err := render.Render(w, opts.RenderOptions()...)
	hooks.OnRenderComplete(ctx, stats.Primitives, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	result, err := encode(ctx, store, stats, opts)
	hooks.OnConvertComplete(ctx, opts.Formats, len(store.Layers()), time.Since(start), err)
	return result, err
}

func encode(ctx context.Context, store *layers.Store, stats render.Stats, opts Options) (*Result, error) {
	result := &Result{
		Stats:     stats,
		ViewBox:   store.ViewBox().String(),
		Layers:    store.Summaries(),
		Documents: make(map[string][]byte),
		Artifacts: make(map[string][]byte),
	}
	for _, name := range store.Layers() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		svg, err := store.Encode(name)
		if err != nil {
			return nil, err
		}
		result.Documents[name] = svg

		for _, format := range opts.Formats {
			data, err := convert(ctx, svg, format, opts)
			if err != nil {
				return nil, fmt.Errorf("layer %s: %w", name, err)
			}
			result.Artifacts[ArtifactName(name, format)] = data
		}
	}
	return result, nil
}

// ArtifactName returns the file name of a layer in the given format.
func ArtifactName(layer, format string) string {
	if format == FormatSVG {
		return layers.FileName(layer)
	}
	return layer + "." + format
}

func convert(ctx context.Context, svg []byte, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		data, err = render.ToPDF(ctx, svg)
	case FormatPNG:
		data, err = render.ToPNG(ctx, svg, opts.PNGScale)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "convert to %s", format)
	}
	return data, nil
}
