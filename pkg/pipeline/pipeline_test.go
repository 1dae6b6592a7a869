package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/worldsvg/pkg/cache"
	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/render/style"
	"github.com/matzehuels/worldsvg/pkg/world"
)

const testWorld = `<world>
  <cell x="0" y="0">
    <feature>
      <geometry type="Polygon">
        <coordinates>
          <point x="0" y="0"/><point x="300" y="0"/><point x="300" y="300"/>
        </coordinates>
      </geometry>
      <properties><property name="water" value="lake"/></properties>
    </feature>
    <feature>
      <geometry type="Point"><coordinates><point x="10" y="20"/></coordinates></geometry>
      <properties><property name="name_en" value="Rosewood"/></properties>
    </feature>
  </cell>
  <cell x="1" y="1">
    <feature>
      <geometry type="Polygon">
        <coordinates><point x="0" y="0"/><point x="10" y="10"/></coordinates>
      </geometry>
      <properties><property name="highway" value="primary"/></properties>
    </feature>
  </cell>
</world>`

func writeWorld(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worldmap.xml")
	if err := os.WriteFile(path, []byte(testWorld), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{InputPath: "worldmap.xml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", opts.OutputDir, DefaultOutputDir)
	}
	if opts.CellSize != 300 {
		t.Errorf("CellSize = %d, want 300", opts.CellSize)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale = %g, want %g", opts.PNGScale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	layer := "../roads"
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing input", Options{}, errors.ErrCodeInvalidConfig},
		{"negative cell size", Options{InputPath: "w.xml", CellSize: -1}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{InputPath: "w.xml", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{InputPath: "w.xml", PNGScale: -2}, errors.ErrCodeInvalidConfig},
		{"bad rule", Options{InputPath: "w.xml", Rules: []style.Rule{{Name: "x", Patch: style.Patch{Layer: &layer}}}}, errors.ErrCodeInvalidLayer},
		{"control char in path", Options{InputPath: "w\x00.xml"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderKeyOptsIncludesRules(t *testing.T) {
	fill := "gray"
	a := Options{InputPath: "w.xml"}
	b := Options{InputPath: "w.xml", Rules: []style.Rule{{Name: "highway", Patch: style.Patch{Fill: &fill}}}}
	for _, o := range []*Options{&a, &b} {
		if err := o.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
	}

	k := cache.NewDefaultKeyer()
	if k.RenderKey("h", a.RenderKeyOpts()) == k.RenderKey("h", b.RenderKeyOpts()) {
		t.Error("rules should change the render key")
	}
}

func TestRenderKeyOptsDistinguishesRules(t *testing.T) {
	roads := "roads"
	rules := [][]style.Rule{
		{{Name: "highway", Value: style.AnyValue, Patch: style.Patch{Layer: &roads}}},
		{{Name: "highway", Value: "primary", Patch: style.Patch{Layer: &roads}}},
		{{Name: "railway", Patch: style.Patch{Layer: &roads}}},
	}

	k := cache.NewDefaultKeyer()
	seen := make(map[string]int)
	for i, r := range rules {
		o := Options{InputPath: "w.xml", Rules: r}
		if err := o.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		key := k.RenderKey("h", o.RenderKeyOpts())
		if j, ok := seen[key]; ok {
			t.Errorf("rule sets %d and %d share key %s", j, i, key)
		}
		seen[key] = i
	}
}

func TestLoadConfigWildcardRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	cfg := `[[rules]]
name = "highway"
value = "*"
layer = "roads"
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	opts.InputPath = "w.xml"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	got := opts.Classifier().Classify(world.Properties{{Name: "highway", Value: "primary"}})
	if got.Layer != "roads" {
		t.Errorf("Classify(highway=primary).Layer = %q, want roads", got.Layer)
	}
}

func TestValidateRejectsReservedRuleLayer(t *testing.T) {
	for _, name := range []string{"map", "background"} {
		layer := name
		o := Options{InputPath: "w.xml", Rules: []style.Rule{{Name: "highway", Patch: style.Patch{Layer: &layer}}}}
		if err := o.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidLayer) {
			t.Errorf("rule layer %q: error = %v, want INVALID_LAYER", name, err)
		}
	}
}

func TestExecute(t *testing.T) {
	opts := Options{InputPath: writeWorld(t)}
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.CacheHit {
		t.Error("first run should not hit the cache")
	}
	if result.Stats.Cells != 2 {
		t.Errorf("Stats.Cells = %d, want 2", result.Stats.Cells)
	}
	if got := result.Stats.Bounds.String(); got != "x[0..1] y[0..1]" {
		t.Errorf("Bounds = %s, want x[0..1] y[0..1]", got)
	}

	for _, name := range []string{"map.svg", "water.svg", "polygons.svg", "text.svg"} {
		if _, ok := result.Artifacts[name]; !ok {
			t.Errorf("missing artifact %s (have %d)", name, len(result.Artifacts))
		}
	}
	if len(result.Artifacts) != 4 {
		t.Errorf("len(Artifacts) = %d, want 4", len(result.Artifacts))
	}

	m, ok := result.Layer("map")
	if !ok || m.Elements != 3 {
		t.Errorf("Layer(map) = %+v, %v, want 3 elements", m, ok)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(result.Documents["water"]); err != nil {
		t.Fatalf("parse water.svg: %v", err)
	}
	if vb := doc.Root().SelectAttrValue("viewBox", ""); vb != "0 0 300 300" {
		t.Errorf("viewBox = %q, want %q", vb, "0 0 300 300")
	}
	if !bytes.Equal(result.Documents["water"], result.Artifacts["water.svg"]) {
		t.Error("svg artifact should equal the layer document")
	}
}

func TestExecuteWithRules(t *testing.T) {
	roads := "roads"
	opts := Options{
		InputPath: writeWorld(t),
		Rules:     []style.Rule{{Name: "highway", Patch: style.Patch{Layer: &roads}}},
	}
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if s, ok := result.Layer("roads"); !ok || s.Elements != 1 {
		t.Errorf("Layer(roads) = %+v, %v, want 1 element", s, ok)
	}
	if _, ok := result.Layer("polygons"); ok {
		t.Error("polygons layer should be empty and absent")
	}
}

func TestExecuteCacheHit(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	path := writeWorld(t)

	first, err := runner.Execute(ctx, Options{InputPath: path})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	second, err := runner.Execute(ctx, Options{InputPath: path})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.Stats != first.Stats {
		t.Errorf("cached Stats = %+v, want %+v", second.Stats, first.Stats)
	}
	if !bytes.Equal(second.Artifacts["map.svg"], first.Artifacts["map.svg"]) {
		t.Error("cached map.svg differs from the rendered one")
	}

	refreshed, err := runner.Execute(ctx, Options{InputPath: path, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	other, err := runner.Execute(ctx, Options{InputPath: path, CellSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("a different cell size should miss the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(bad, []byte("<world><cell"), 0o644); err != nil {
		t.Fatal(err)
	}
	point := filepath.Join(dir, "point.xml")
	twoPoints := `<world><cell x="0" y="0"><feature><geometry type="Point"><coordinates>
		<point x="1" y="1"/><point x="2" y="2"/></coordinates></geometry></feature></cell></world>`
	if err := os.WriteFile(point, []byte(twoPoints), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join(dir, "missing.xml"), errors.ErrCodeFileNotFound},
		{"malformed", bad, errors.ErrCodeInvalidInput},
		{"invalid geometry", point, errors.ErrCodeInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{InputPath: tt.path})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{InputPath: writeWorld(t)})
	if err != context.Canceled {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteArtifacts(dir, map[string][]byte{
		"water.svg": []byte("<svg/>"),
		"map.svg":   []byte("<svg></svg>"),
	})
	if err != nil {
		t.Fatalf("WriteArtifacts() error: %v", err)
	}
	want := []string{filepath.Join(dir, "map.svg"), filepath.Join(dir, "water.svg")}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(filepath.Join(dir, "water.svg"))
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("water.svg = %q, %v", data, err)
	}

	if _, err := WriteArtifacts(dir, map[string][]byte{"../x.svg": nil}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteArtifacts(../x.svg) error = %v, want INVALID_PATH", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	cfg := `input_path = "worldmap.xml"
output_dir = "out"
cell_size = 150
formats = ["svg", "png"]
background = true

[[rules]]
name = "highway"
layer = "roads"
stroke = "gray"
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if opts.InputPath != "worldmap.xml" || opts.OutputDir != "out" || opts.CellSize != 150 || !opts.Background {
		t.Errorf("LoadConfig() = %+v", opts)
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [svg png]", opts.Formats)
	}
	if len(opts.Rules) != 1 {
		t.Fatalf("len(Rules) = %d, want 1", len(opts.Rules))
	}
	r := opts.Rules[0]
	if r.Name != "highway" || r.Layer == nil || *r.Layer != "roads" || r.Stroke == nil || *r.Stroke != "gray" || r.Fill != nil {
		t.Errorf("rule = %s", r.Describe())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("cellsize = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("formats = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "none.toml"), errors.ErrCodeFileNotFound},
		{"unknown key", unknown, errors.ErrCodeInvalidConfig},
		{"syntax", broken, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(tt.path); !errors.Is(err, tt.code) {
				t.Errorf("LoadConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteViewBox(t *testing.T) {
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{InputPath: writeWorld(t), CellSize: 100})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.ViewBox != "0 0 100 100" {
		t.Errorf("ViewBox = %q, want %q", result.ViewBox, "0 0 100 100")
	}
}
