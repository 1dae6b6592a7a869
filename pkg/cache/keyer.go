package cache

import "strings"

// RenderKeyOpts lists the options that change rendered output.
type RenderKeyOpts struct {
	CellSize   int      `json:"cell_size"`
	Background bool     `json:"background"`
	Strict     bool     `json:"strict"`
	Formats    []string `json:"formats"`
	Rules      []string `json:"rules,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// RenderKey returns the key for a rendered layer set of the input with
	// the given content hash.
	RenderKey(inputHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey returns "render:<sha256(inputHash, opts)>".
func (DefaultKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return hashKey("render", inputHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// release so that a renderer change never serves documents from an older
// build.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer if nil) with prefix. A trailing
// ':' is added when missing.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey returns the inner key with the scope prefix.
func (k *ScopedKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(inputHash, opts)
}
