package layers

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/matzehuels/worldsvg/pkg/errors"
)

// WriteFiles writes each named file into dir (created if missing) and
// returns the written paths in name order. Names must be plain file names.
// It stops at the first failure; files already written stay in place.
func WriteFiles(dir string, files map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || filepath.Base(name) != name || name[0] == '.' {
			return paths, errors.New(errors.ErrCodeInvalidPath, "%q is not a plain file name", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
