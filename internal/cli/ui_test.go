package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/worldsvg/pkg/render"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name   string
		stats  render.Stats
		cached bool
		want   []string
		absent string
	}{
		{"fresh", render.Stats{Cells: 2, Primitives: 5}, false, []string{"2 cells", "5 primitives", "fresh"}, "skipped"},
		{"cached with skips", render.Stats{Cells: 1, Primitives: 1, Skipped: 3}, true, []string{"3 skipped", "cached"}, "fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(tt.stats, tt.cached)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if strings.Contains(out, tt.absent) {
				t.Errorf("output %q should not contain %q", out, tt.absent)
			}
		})
	}
}

func TestPrintHelpers(t *testing.T) {
	buf := captureStdout(t)

	printSuccess("Rendered %d layers", 4)
	printFile("out/map.svg")
	printKeyValue("Bounds", "x[0..2] y[0..1]")

	out := buf.String()
	for _, want := range []string{iconSuccess + " Rendered 4 layers", "out/map.svg", "Bounds", "x[0..2] y[0..1]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("wrote %d lines, want 3", n)
	}
}
