package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/worldsvg/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	opts := pipeline.Options{InputPath: writeSample(t, t.TempDir())}
	result, err := pipeline.NewRunner(nil, nil, nil).Execute(testContext(t), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	srv := httptest.NewServer(newServer(result, log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServeIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, want := range []string{`href="/layers/water.svg"`, `href="/layers/map.svg"`, "2 cells"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q:\n%s", want, body)
		}
	}
}

func TestServeLayers(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/layers")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got layersResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Cells != 2 || got.Features != 3 {
		t.Errorf("cells, features = %d, %d, want 2, 3", got.Cells, got.Features)
	}
	names := make(map[string]bool)
	for _, l := range got.Layers {
		names[l.Name] = true
	}
	for _, want := range []string{"map", "water", "medical", "text"} {
		if !names[want] {
			t.Errorf("layers missing %q: %v", want, got.Layers)
		}
	}
}

func TestServeLayer(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/layers/water.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(body, "<svg") {
		t.Errorf("body is not an svg document:\n%s", body)
	}

	for _, path := range []string{"/layers/nope.svg", "/layers/water", "/missing"} {
		if resp, _ := get(t, srv.URL+path); resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, resp.StatusCode)
		}
	}
}
