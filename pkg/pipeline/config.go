package pipeline

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/worldsvg/pkg/errors"
)

// ConfigFile is the config file looked up in the working directory.
const ConfigFile = "worldsvg.toml"

// LoadConfig decodes a TOML config file into Options. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
//	input_path = "worldmap.xml"
//	output_dir = "out"
//	cell_size  = 300
//	formats    = ["svg", "png"]
//
//	[[rules]]
//	name  = "highway"
//	layer = "roads"
//	stroke = "gray"
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeIO, err, "config %s", path)
	}

	var opts Options
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}
