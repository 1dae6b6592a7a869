package pipeline

import (
	"github.com/matzehuels/worldsvg/pkg/render/layers"
)

// WriteArtifacts writes every artifact into dir (created if missing) and
// returns the written paths in name order. It shares its writer with
// [layers.Store.Save], so both reject names that are not plain file names.
func WriteArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	return layers.WriteFiles(dir, artifacts)
}
