package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/internal/demo"
	"github.com/matzehuels/stipple/pkg/cache"
	serr "github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/pipeline"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
	"github.com/matzehuels/stipple/pkg/theme/themefile"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, an HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagrams over HTTP for live preview",
		Long: `Serve diagrams over HTTP. Each POST to /api/documents builds a diagram
into a document with its own theme; variation switches and layer toggles
re-render only what changed.

  POST   /api/documents                      {"diagram": "arc", "theme": "classic"}
  GET    /api/documents/{id}
  PUT    /api/documents/{id}/variation       {"variation": "dark"}
  PUT    /api/documents/{id}/layers/{layer}  {"visible": false}
  GET    /api/documents/{id}/render/{format}?scale=2&all=1
  GET    /api/documents/{id}/graph/{format}?crumbs=1
  DELETE /api/documents/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.BindPFlag(cfgServeAddr, cmd.Flags().Lookup("addr")); err != nil {
				return err
			}
			ch, err := c.newCache(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer ch.Close()
			srv := newServer(ch, loggerFromContext(cmd.Context()))
			return srv.listen(cmd.Context(), c.Config.GetString(cfgServeAddr))
		},
	}

	cmd.Flags().String("addr", "", "listen address (default localhost:8340)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// =============================================================================
// Documents
// =============================================================================

// document is one built diagram. All access goes through mu: scenes,
// themes and compilers are single-writer.
type document struct {
	mu      sync.Mutex
	id      uuid.UUID
	diagram string
	scene   *scene.Scene
	theme   *theme.Theme
	runner  *pipeline.Runner
	visible *render.Compiler
	all     *render.Compiler
	created time.Time
}

type documentInfo struct {
	ID         string      `json:"id"`
	Diagram    string      `json:"diagram"`
	Theme      string      `json:"theme"`
	Variation  string      `json:"variation"`
	Variations []string    `json:"variations"`
	Groups     int         `json:"groups"`
	Crumbs     int         `json:"crumbs"`
	Revision   uint64      `json:"revision"`
	Layers     []layerInfo `json:"layers"`
	Created    time.Time   `json:"created"`
}

type layerInfo struct {
	ID      int  `json:"id"`
	Z       int  `json:"z"`
	Visible bool `json:"visible"`
}

// info must be called with d.mu held.
func (d *document) info() documentInfo {
	info := documentInfo{
		ID:         d.id.String(),
		Diagram:    d.diagram,
		Theme:      d.theme.Name,
		Variation:  strings.Join(d.theme.Active(), "."),
		Variations: d.theme.Variations(),
		Groups:     d.scene.GroupCount(),
		Crumbs:     d.scene.CrumbCount(),
		Revision:   d.scene.Revision(),
		Created:    d.created,
	}
	for _, l := range d.scene.Layers() {
		info.Layers = append(info.Layers, layerInfo{ID: int(l.ID), Z: l.Z, Visible: l.Visible})
	}
	return info
}

// =============================================================================
// Server
// =============================================================================

type server struct {
	cache  cache.Cache
	logger *log.Logger

	mu   sync.RWMutex
	docs map[uuid.UUID]*document
}

func newServer(c cache.Cache, logger *log.Logger) *server {
	return &server{cache: c, logger: logger, docs: make(map[uuid.UUID]*document)}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/diagrams", s.handleDiagrams)
		r.Get("/themes", s.handleThemes)
		r.Post("/documents", s.handleCreate)
		r.Route("/documents/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Put("/variation", s.handleVariation)
			r.Put("/layers/{layer}", s.handleLayer)
			r.Get("/render/{format}", s.handleRender)
			r.Get("/graph/{format}", s.handleGraph)
		})
	})
	return r
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func (s *server) listen(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()
	printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
	printInfo("Press Ctrl+C to stop")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// observe reports every request to the server hooks and the debug log.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}

func (s *server) document(r *http.Request) (*document, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, serr.New(serr.ErrCodeInvalidInput, "invalid document id %q", chi.URLParam(r, "id"))
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, serr.New(serr.ErrCodeNotFound, "document %s not found", id)
	}
	return d, nil
}

// =============================================================================
// Handlers
// =============================================================================

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>stipple</title></head>
<body>
<h1>stipple</h1>
<ul>{{range .}}
<li><b>{{.Name}}</b>: {{.Description}}</li>{{end}}
</ul>
<p>POST /api/documents to build one.</p>
</body></html>
`))

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, demo.All()); err != nil {
		s.logger.Warn("render index", "error", err)
	}
}

func (s *server) handleDiagrams(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var out []entry
	for _, d := range demo.All() {
		out = append(out, entry{Name: d.Name, Description: d.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themefile.BuiltinNames())
}

type createRequest struct {
	Diagram   string `json:"diagram"`
	Theme     string `json:"theme"`
	Variation string `json:"variation"`
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, serr.Wrap(serr.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	d, err := demo.Get(req.Diagram)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Theme == "" {
		req.Theme = defaultTheme
	}
	th, err := themefile.Builtin(req.Theme)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := th.UseVariation(theme.ParseVariationPath(req.Variation)); err != nil {
		writeError(w, err)
		return
	}
	sc, err := d.Build(th, s.logger)
	if err != nil {
		writeError(w, err)
		return
	}

	id := uuid.New()
	keyer := cache.NewScopedKeyer(nil, "doc:"+id.String()+":")
	doc := &document{
		id:      id,
		diagram: d.Name,
		scene:   sc,
		theme:   th,
		runner:  pipeline.NewRunner(s.cache, keyer, s.logger),
		visible: render.NewCompiler(render.Options{}),
		all:     render.NewCompiler(render.Options{All: true}),
		created: time.Now().UTC(),
	}

	s.mu.Lock()
	s.docs[id] = doc
	s.mu.Unlock()
	s.logger.Info("created document", "id", id, "diagram", d.Name, "theme", th.Name)

	doc.mu.Lock()
	info := doc.info()
	doc.mu.Unlock()
	w.Header().Set("Location", "/api/documents/"+id.String())
	writeJSON(w, http.StatusCreated, info)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()
	writeJSON(w, http.StatusOK, doc.info())
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	delete(s.docs, doc.id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleVariation(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Variation string `json:"variation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, serr.Wrap(serr.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	if err := doc.theme.UseVariation(theme.ParseVariationPath(req.Variation)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.info())
}

func (s *server) handleLayer(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	layer, err := strconv.Atoi(chi.URLParam(r, "layer"))
	if err != nil {
		writeError(w, serr.New(serr.ErrCodeInvalidInput, "invalid layer id %q", chi.URLParam(r, "layer")))
		return
	}
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, serr.Wrap(serr.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	if err := doc.scene.SetLayerVisible(scene.LayerID(layer), req.Visible); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.info())
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	format := chi.URLParam(r, "format")
	opts := pipeline.Options{
		Formats:    []string{format},
		Title:      q.Get("title"),
		Background: q.Get("background"),
		All:        q.Get("all") != "",
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, serr.Wrap(serr.ErrCodeInvalidInput, err, "scale"))
			return
		}
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	opts.Compiler = doc.visible
	if opts.All {
		opts.Compiler = doc.all
	}
	opts.ThemeName = doc.theme.Name
	opts.Variation = doc.theme.Active()

	res, err := doc.runner.Execute(r.Context(), doc.scene, doc.theme, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("ETag", strconv.Quote(res.Hash))
	w.Header().Set("X-Compile-Reused", strconv.FormatBool(res.CacheInfo.CompileReused))
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	writeArtifact(w, format, res.Artifacts[format])
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := chi.URLParam(r, "format")
	var scale float64
	if v := r.URL.Query().Get("scale"); v != "" {
		if scale, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, serr.Wrap(serr.ErrCodeInvalidInput, err, "scale"))
			return
		}
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	data, hit, err := doc.runner.RenderGraphWithCacheInfo(r.Context(), doc.scene, doc.theme, format, scale, r.URL.Query().Get("crumbs") != "")
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeArtifact(w, format, data)
}

// =============================================================================
// Responses
// =============================================================================

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := serr.GetCode(err)
	if code == "" {
		code = serr.ErrCodeInternal
	}
	status := http.StatusInternalServerError
	switch code {
	case serr.ErrCodeNotFound, serr.ErrCodeVariationMissing, serr.ErrCodeLayerMissing:
		status = http.StatusNotFound
	case serr.ErrCodeInvalidInput, serr.ErrCodeInvalidFormat, serr.ErrCodeInvalidTheme:
		status = http.StatusBadRequest
	case serr.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	writeJSON(w, status, map[string]string{
		"error": serr.UserMessage(err),
		"code":  string(code),
	})
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
