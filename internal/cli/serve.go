package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/worldsvg/pkg/observability"
	"github.com/matzehuels/worldsvg/pkg/pipeline"
	"github.com/matzehuels/worldsvg/pkg/render/layers"
	"github.com/matzehuels/worldsvg/pkg/world"
)

const defaultAddr = "localhost:8080"

// serveCommand creates the serve command, an HTTP preview of the layers.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags renderFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [input]",
		Short: "Preview the rendered layers in a browser",
		Long: `Render a world file once and serve the layer documents over HTTP:

  GET /                   index with every layer
  GET /layers             JSON summary (bounds, layers, element counts)
  GET /layers/{name}.svg  one layer document`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args, &flags)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatSVG}

			runner := c.newRunner(flags.noCache)
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return c.listen(cmd.Context(), addr, newServer(result, c.Logger))
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

// listen serves h until ctx is cancelled, then shuts down gracefully.
func (c *CLI) listen(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Serving layers")
	printDetail("http://%s/", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// layersResponse is the body of GET /layers.
type layersResponse struct {
	Bounds   world.Bounds     `json:"bounds"`
	ViewBox  string           `json:"view_box"`
	Cells    int              `json:"cells"`
	Features int              `json:"features"`
	Layers   []layers.Summary `json:"layers"`
}

// server holds one immutable pipeline result.
type server struct {
	result *pipeline.Result
}

// newServer builds the preview router for result.
func newServer(result *pipeline.Result, logger *log.Logger) http.Handler {
	s := &server{result: result}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", s.handleIndex)
	r.Get("/layers", s.handleLayers)
	r.Get("/layers/{file}", s.handleLayer)

	return r
}

// requestLogger attaches logger to each request context and reports
// completed requests to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))
			observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>worldsvg</title></head>
<body>
<h1>worldsvg</h1>
<p>bounds {{.Bounds}} · {{.Cells}} cells · {{.Features}} features</p>
<ul>
{{range .Layers}}<li><a href="/layers/{{.File}}">{{.Name}}</a> ({{.Elements}} elements)</li>
{{end}}</ul>
</body>
</html>
`))

func (s *server) summary() layersResponse {
	st := s.result.Stats
	return layersResponse{
		Bounds:   st.Bounds,
		ViewBox:  s.result.ViewBox,
		Cells:    st.Cells,
		Features: st.Features,
		Layers:   s.result.Layers,
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.summary()); err != nil {
		loggerFromContext(r.Context()).Error("render index", "err", err)
	}
}

func (s *server) handleLayers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.summary()); err != nil {
		loggerFromContext(r.Context()).Error("encode layers", "err", err)
	}
}

func (s *server) handleLayer(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), "."+layers.Extension)
	if !ok {
		http.NotFound(w, r)
		return
	}
	doc, ok := s.result.Documents[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(doc)
}
