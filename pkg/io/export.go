package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/world"
)

// WriteJSON encodes w as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(w *world.World, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode json")
	}
	return nil
}

// ExportJSON writes w as JSON to the file at path, replacing it.
func ExportJSON(w *world.World, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteJSON(w, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
