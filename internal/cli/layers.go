package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/worldsvg/pkg/pipeline"
)

// layersCommand creates the layers command, a dry run of render.
func (c *CLI) layersCommand() *cobra.Command {
	var (
		flags     renderFlags
		showRules bool
	)

	cmd := &cobra.Command{
		Use:   "layers [input]",
		Short: "List the layers a world file renders into",
		Long: `Render a world file in memory and print its bounds and the number of
elements in every layer. Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args, &flags)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatSVG}

			runner := c.newRunner(flags.noCache)
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			printKeyValue("Input", opts.InputPath)
			printKeyValue("Bounds", result.Stats.Bounds.String())
			printKeyValue("Cells", fmt.Sprintf("%d", result.Stats.Cells))
			printKeyValue("Features", fmt.Sprintf("%d", result.Stats.Features))
			if result.Stats.Skipped > 0 {
				printWarning("%d geometries of unsupported kinds skipped", result.Stats.Skipped)
			}
			writeLine(layerTable(result.Layers))

			if showRules {
				printNewline()
				writeLine(StyleTitle.Render("Rules"))
				for _, r := range opts.Classifier().Rules() {
					printDetail("%s", r.Describe())
				}
			}
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&showRules, "rules", false, "also print the style rules in evaluation order")

	return cmd
}
