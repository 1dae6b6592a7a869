package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/io"
)

// convertCommand creates the convert command (world file → JSON).
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Re-export a world file as JSON",
		Long: `Decode a world file and write it in the JSON form accepted by render.
The output defaults to the input name with a .json extension.`,
		Example: `  worldsvg convert worldmap.xml
  worldsvg convert worldmap.xml -o world.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadConfig()
			if err != nil {
				return err
			}
			input := opts.InputPath
			if len(args) > 0 {
				input = args[0]
			}
			if input == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "input path is required")
			}
			if output == "" {
				output = jsonPath(input)
			}
			if filepath.Clean(output) == filepath.Clean(input) {
				return errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the input", output)
			}

			prog := newProgress(c.Logger)
			var readOpts []io.ReadOption
			if strict || opts.Strict {
				readOpts = append(readOpts, io.WithStrict())
			}
			w, err := io.ImportWorld(input, readOpts...)
			if err != nil {
				return err
			}
			if err := io.ExportJSON(w, output); err != nil {
				return err
			}
			prog.done("converted world")

			printSuccess("Converted %d cells, %d features", len(w.Cells), w.FeatureCount())
			printFile(output)
			printNextStep("Render it", "worldsvg render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON file")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject geometries that render nothing")

	return cmd
}

// jsonPath swaps the extension of path for .json.
func jsonPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
}
