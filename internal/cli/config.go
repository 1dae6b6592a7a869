package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/pipeline"
)

// renderFlags holds the flags shared by render, layers and serve. Only flags
// the user set override the config file.
type renderFlags struct {
	outputDir  string
	cellSize   int
	formats    string
	pngScale   float64
	background bool
	strict     bool
	noCache    bool
	refresh    bool
}

// register adds the flags to cmd. withOutput adds the ones that only matter
// when artifacts are written.
func (f *renderFlags) register(cmd *cobra.Command, withOutput bool) {
	flags := cmd.Flags()
	flags.IntVar(&f.cellSize, "cell-size", 0, "world units per cell (default 300)")
	flags.BoolVar(&f.background, "background", false, "draw a white background layer")
	flags.BoolVar(&f.strict, "strict", false, "reject geometries that render nothing")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
	flags.BoolVar(&f.refresh, "refresh", false, "re-render even if a cached result exists")
	if withOutput {
		flags.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the layer files (default \".\")")
		flags.StringVarP(&f.formats, "format", "f", "", "output formats: svg, pdf, png (comma-separated)")
		flags.Float64Var(&f.pngScale, "png-scale", 0, "PNG scale factor (default 0.25)")
	}
}

// loadConfig reads --config, or ./worldsvg.toml when it exists. With
// neither, it returns zero Options.
func (c *CLI) loadConfig() (pipeline.Options, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(pipeline.ConfigFile); err != nil {
			return pipeline.Options{}, nil
		}
		path = pipeline.ConfigFile
	}
	opts, err := pipeline.LoadConfig(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	c.Logger.Debug("loaded config", "path", path, "rules", len(opts.Rules))
	return opts, nil
}

// loadOptions merges config file, positional input and changed flags.
func (c *CLI) loadOptions(cmd *cobra.Command, args []string, f *renderFlags) (pipeline.Options, error) {
	opts, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	if len(args) > 0 {
		opts.InputPath = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		opts.OutputDir = f.outputDir
	}
	// Zero means "default" in Options, so explicit flag values are checked
	// before defaults can replace them.
	if flags.Changed("cell-size") {
		if err := errors.ValidateCellSize(f.cellSize); err != nil {
			return pipeline.Options{}, fmt.Errorf("--cell-size: %w", err)
		}
		opts.CellSize = f.cellSize
	}
	if flags.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if flags.Changed("png-scale") {
		if f.pngScale <= 0 {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidConfig, "--png-scale must be positive, got %g", f.pngScale)
		}
		opts.PNGScale = f.pngScale
	}
	if flags.Changed("background") {
		opts.Background = f.background
	}
	if flags.Changed("strict") {
		opts.Strict = f.strict
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}
