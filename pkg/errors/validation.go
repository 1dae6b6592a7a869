package errors

import (
	"strings"
	"unicode"
)

// maxLayerNameLength bounds layer names, which become output file names.
const maxLayerNameLength = 128

// ValidateLayerName validates a layer name for use as an output file basename.
// Layer names come from built-in rules and from user config, and each one is
// written to disk as <name>.<ext>, so they must not be able to escape the
// output directory.
//
// The validation rules:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No leading dot (hidden files)
//   - Maximum length of 128 characters
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayer, "layer name cannot be empty")
	}

	if len(name) > maxLayerNameLength {
		return New(ErrCodeInvalidLayer, "layer name too long (max %d characters)", maxLayerNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLayer, "layer name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidLayer, "layer name cannot contain path separators: %q", name)
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidLayer, "layer name cannot start with a dot: %q", name)
	}

	return nil
}

// ValidateCellSize checks that a cell size is usable as a world-space scale.
func ValidateCellSize(size int) error {
	if size <= 0 {
		return New(ErrCodeInvalidConfig, "cell size must be positive, got %d", size)
	}
	return nil
}

// ValidatePath validates an input or output path supplied on the command line
// or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
