package dev

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayfind-dev/wayfind/internal/config"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives server logs. Defaults to slog.Default().
	Logger *slog.Logger

	// OnGenerate is called after each regeneration pass.
	OnGenerate func(changed bool, err error)

	// OnReload is called when browsers are reloaded.
	OnReload func(clients int)
}

// Server is the development server. It serves the build output as a
// single-page app, watches the pages and layouts directories, and
// regenerates the route table on change.
type Server struct {
	config       *config.Config
	options      ServerOptions
	log          *slog.Logger
	watcher      *Watcher
	reloadServer *ReloadServer
	changeCh     chan Change
	httpServer   *http.Server
	mu           sync.Mutex
	running      bool
	hotReload    bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	hotReload := cfg.Dev.HotReload

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	layoutsDir := ""
	if cfg.Generator.Layouts {
		layoutsDir = cfg.LayoutsPath()
	}

	// Generated files are rewritten by the server itself; watching them
	// would loop.
	ignore := append([]string{}, DefaultIgnore...)
	ignore = append(ignore, GeneratedRoutesFile, GeneratedLayoutsFile)

	extra := append([]string{cfg.OutputPath()}, cfg.Dev.Watch...)

	watcher := NewWatcher(WatcherConfig{
		PagesDir:   cfg.PagesPath(),
		LayoutsDir: layoutsDir,
		Extra:      extra,
		Ignore:     ignore,
		Debounce:   100 * time.Millisecond,
	})

	var reloadServer *ReloadServer
	if hotReload {
		reloadServer = NewReloadServer()
	}

	return &Server{
		config:       cfg,
		options:      options,
		log:          logger.With("component", "dev"),
		watcher:      watcher,
		reloadServer: reloadServer,
		hotReload:    hotReload,
	}
}

// Start starts the development server. It blocks until the context is
// canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	// Initial generation
	if err := s.regenerate(); err != nil {
		s.log.Error("route generation failed", "error", err)
		s.notifyError(err.Error())
	}

	// Set up watcher callback
	s.changeCh = make(chan Change, 64)
	s.watcher.OnChange(func(change Change) {
		select {
		case s.changeCh <- change:
		default:
		}
	})

	go s.watcher.Start(ctx)
	go s.processChanges(ctx)

	s.httpServer = &http.Server{
		Addr:    s.config.DevAddress(),
		Handler: s.handler(),
	}

	s.log.Info("server running", "url", s.config.DevURL())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	s.watcher.Stop()
	if s.reloadServer != nil {
		s.reloadServer.Close()
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// handler builds the HTTP handler stack.
func (s *Server) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(Tracing())
	r.Use(Metrics())
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	if s.reloadEnabled() {
		r.Get(ReloadPath, s.reloadServer.HandleWebSocket)
	}

	r.Handle("/*", http.HandlerFunc(s.serveStatic))

	return r
}

// serveStatic serves the build output. Paths that do not resolve to a
// file fall back to index.html so client-side routes deep-link.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	root := s.config.OutputPath()
	path := filepath.Join(root, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		path = filepath.Join(root, "index.html")
	}

	if strings.HasSuffix(path, ".html") {
		s.serveHTML(w, r, path)
		return
	}

	http.ServeFile(w, r, path)
}

// serveHTML serves an HTML file with the live reload client injected.
func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, path string) {
	body, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	html := string(body)
	if s.reloadEnabled() {
		if idx := strings.LastIndex(html, "</body>"); idx != -1 {
			html = html[:idx] + DevClientScript + html[idx:]
		} else if idx := strings.LastIndex(html, "</html>"); idx != -1 {
			html = html[:idx] + DevClientScript + html[idx:]
		} else {
			html += DevClientScript
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(html))
}

// processChanges serializes file change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-s.changeCh:
			changes := []Change{change}
			draining := true
			for draining {
				select {
				case next := <-s.changeCh:
					changes = append(changes, next)
				default:
					draining = false
				}
			}
			s.handleChanges(changes)
		}
	}
}

// handleChanges handles a batch of file changes.
func (s *Server) handleChanges(changes []Change) {
	if len(changes) == 0 {
		return
	}

	needsRegen := false
	for _, change := range changes {
		s.log.Info("changed", "path", change.Path)
		if change.Type == ChangePage || change.Type == ChangeLayout {
			needsRegen = true
		}
	}

	if needsRegen {
		if err := s.regenerate(); err != nil {
			s.log.Error("route generation failed", "error", err)
			s.notifyError(err.Error())
			return
		}
		s.clearReloadError()
	}

	s.notifyReload()
}

// regenerate rewrites the generated route and layout files.
func (s *Server) regenerate() error {
	changed, err := RegenerateRoutes(s.config)
	if s.options.OnGenerate != nil {
		s.options.OnGenerate(changed, err)
	}
	if err != nil {
		return err
	}
	if changed {
		s.log.Info("regenerated", "file", GeneratedRoutesFile)
	}

	if s.config.Generator.Layouts {
		layoutsChanged, err := RegenerateLayouts(s.config)
		if s.options.OnGenerate != nil {
			s.options.OnGenerate(layoutsChanged, err)
		}
		if err != nil {
			return err
		}
		if layoutsChanged {
			s.log.Info("regenerated", "file", GeneratedLayoutsFile)
		}
	}

	return nil
}

func (s *Server) reloadEnabled() bool {
	return s.hotReload && s.reloadServer != nil
}

func (s *Server) notifyReload() {
	if !s.reloadEnabled() {
		return
	}

	s.reloadServer.NotifyReload()
	clients := s.reloadServer.ClientCount()

	m := devMetrics()
	m.reloadsSent.Inc()
	m.reloadClients.Set(float64(clients))

	if s.options.OnReload != nil {
		s.options.OnReload(clients)
	}
	s.log.Info("reloaded browsers", "clients", clients)
}

func (s *Server) notifyError(errMsg string) {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.NotifyError(errMsg)
}

func (s *Server) clearReloadError() {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.ClearError()
}
