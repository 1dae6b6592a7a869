package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/worldsvg/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a world file into one document per layer",
		Long: `Render a worldmap XML (or JSON) file into layered SVG documents.

Every primitive is written to its semantic layer and to the composite "map"
layer. Files are named after the layer: water.svg, medical.svg, map.svg, ...

The input may also be given as input_path in worldsvg.toml.`,
		Example: `  worldsvg render worldmap.xml
  worldsvg render worldmap.xml -o out --format svg,png
  worldsvg render --pick`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, flags.noCache, pick)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&pick, "pick", false, "choose which layers to write interactively")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, noCache, pick bool) error {
	runner := c.newRunner(noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.InputPath))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	artifacts := result.Artifacts
	if pick {
		chosen, err := pickLayers(ctx, result.Layers)
		if err != nil {
			return err
		}
		if len(chosen) == 0 {
			printInfo("No layers selected, nothing written")
			return nil
		}
		artifacts = filterArtifacts(artifacts, chosen, opts.Formats)
		printDetail("Layers: %s", layerNames(chosen))
	}

	paths, err := pipeline.WriteArtifacts(opts.OutputDir, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d layers", len(result.Layers))
	printStats(result.Stats, result.CacheHit)
	printDetail("Bounds: %s", result.Stats.Bounds)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// filterArtifacts keeps the artifacts of the chosen layers in every format.
func filterArtifacts(artifacts map[string][]byte, chosen, formats []string) map[string][]byte {
	out := make(map[string][]byte)
	for _, layer := range chosen {
		for _, format := range formats {
			name := pipeline.ArtifactName(layer, format)
			if data, ok := artifacts[name]; ok {
				out[name] = data
			}
		}
	}
	return out
}

// layerNames returns the names in a comma-separated list for display.
func layerNames(names []string) string {
	return strings.Join(names, ", ")
}
