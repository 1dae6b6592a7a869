// Package pipeline runs the decode → render → convert pipeline shared by the
// render, layers and serve commands.
//
// # Stages
//
//  1. Decode: read the world file (XML or JSON) into a [world.World]
//  2. Render: compute bounds, classify features and fill the layer store
//  3. Convert: encode each layer as SVG and, if requested, PDF or PNG
//
// The result of a run is a set of named artifacts ("water.svg", "map.pdf")
// that [WriteArtifacts] persists. A [Runner] caches results keyed by the
// input's content hash and every option that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath: "worldmap.xml",
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	paths, err := pipeline.WriteArtifacts("out", result.Artifacts)
//
// [world.World]: github.com/matzehuels/worldsvg/pkg/world.World
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/worldsvg/pkg/cache"
	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/render"
	"github.com/matzehuels/worldsvg/pkg/render/layers"
	"github.com/matzehuels/worldsvg/pkg/render/style"
	"github.com/matzehuels/worldsvg/pkg/world"
)

const (
	// DefaultOutputDir is where artifacts are written when no directory is
	// configured.
	DefaultOutputDir = "."

	// DefaultPNGScale renders a 300-unit cell as 75 pixels.
	DefaultPNGScale = 0.25

	// DefaultTTL is how long rendered results stay in the cache.
	DefaultTTL = 7 * 24 * time.Hour
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks every format in the list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures one pipeline run. The toml tags define the config file
// layout (see [LoadConfig]).
type Options struct {
	InputPath  string       `toml:"input_path"`
	OutputDir  string       `toml:"output_dir"`
	CellSize   int          `toml:"cell_size"`
	Formats    []string     `toml:"formats"`
	Background bool         `toml:"background"`
	Strict     bool         `toml:"strict"`
	PNGScale   float64      `toml:"png_scale"`
	Rules      []style.Rule `toml:"rules"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool        `toml:"-"`
	Logger  *log.Logger `toml:"-"`

	validated bool
}

// ValidateAndSetDefaults checks required fields and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputPath == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "input path is required")
	}
	if err := errors.ValidatePath(o.InputPath); err != nil {
		return err
	}

	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if err := errors.ValidatePath(o.OutputDir); err != nil {
		return err
	}
	if o.CellSize == 0 {
		o.CellSize = world.DefaultCellSize
	}
	if err := errors.ValidateCellSize(o.CellSize); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive, got %g", o.PNGScale)
	}
	for i, r := range o.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Classifier returns the built-in classifier extended with the configured
// rules.
func (o *Options) Classifier() *style.Classifier {
	return style.NewClassifier(o.Rules...)
}

// RenderOptions translates the options into render options.
func (o *Options) RenderOptions() []render.Option {
	opts := []render.Option{
		render.WithCellSize(o.CellSize),
		render.WithClassifier(o.Classifier()),
	}
	if o.Background {
		opts = append(opts, render.WithBackground())
	}
	return opts
}

// RenderKeyOpts returns the cache key options for this run.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	k := cache.RenderKeyOpts{
		CellSize:   o.CellSize,
		Background: o.Background,
		Strict:     o.Strict,
		Formats:    o.Formats,
	}
	if containsFormat(o.Formats, FormatPNG) {
		k.Formats = append(append([]string(nil), o.Formats...), fmt.Sprintf("scale=%g", o.PNGScale))
	}
	for _, r := range o.Rules {
		k.Rules = append(k.Rules, r.Describe())
	}
	return k
}

func containsFormat(formats []string, f string) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}

// Result is the output of a pipeline run.
type Result struct {
	// Stats describes the render pass (bounds, counts).
	Stats render.Stats `json:"stats"`

	// ViewBox is the viewBox shared by every layer document.
	ViewBox string `json:"view_box"`

	// Layers lists the produced layers with their element counts.
	Layers []layers.Summary `json:"layers"`

	// Documents holds the SVG document of every layer, keyed by layer name.
	Documents map[string][]byte `json:"documents"`

	// Artifacts holds the requested outputs keyed by file name.
	Artifacts map[string][]byte `json:"artifacts"`

	// CacheHit reports that the result was served from the cache.
	CacheHit bool `json:"-"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"-"`
}

// Layer returns the summary of the named layer.
func (r *Result) Layer(name string) (layers.Summary, bool) {
	for _, s := range r.Layers {
		if s.Name == name {
			return s, true
		}
	}
	return layers.Summary{}, false
}
