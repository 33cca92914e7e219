// Package server exposes the spreadsheet file over HTTP.
package server

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andareed/siftly-bhs/logging"
)

const (
	SheetRoute   = "/excel"
	MetricsRoute = "/metrics"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Config holds the endpoint settings.
type Config struct {
	Addr      string
	SheetPath string
}

// Server serves exactly one spreadsheet file.
type Server struct {
	cfg     Config
	router  chi.Router
	metrics *metrics
}

// New constructs a server with routes and middleware wired.
func New(cfg Config) *Server {
	s := &Server{
		cfg:     cfg,
		metrics: newMetrics(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Any origin may read the file. The viewer and ad-hoc browser tools load it
	// cross-origin, and the data is not access controlled.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get(SheetRoute, s.handleSheet)
	r.Head(SheetRoute, s.handleSheet)
	r.Method(http.MethodGet, MetricsRoute, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	s.router = r
	return s
}

// Handler exposes the HTTP handler for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry exposes the collectors backing /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.metrics.registry
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Infof("Server is running on %s", displayURL(ln.Addr()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		srv.Close()
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	path := s.cfg.SheetPath

	f, err := os.Open(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if info.IsDir() {
		s.fail(w, r, fs.ErrNotExist)
		return
	}

	name := filepath.Base(path)
	w.Header().Set("Content-Type", contentTypeFor(name))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	http.ServeContent(w, r, name, info.ModTime(), f)
	s.metrics.observe(outcomeOK, info.Size())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warnf("%s %s: sheet %s not found", r.Method, r.URL.Path, s.cfg.SheetPath)
		s.metrics.observe(outcomeMissing, 0)
		http.Error(w, "spreadsheet not found", http.StatusNotFound)
		return
	}
	logging.Errorf("%s %s: reading sheet %s: %v", r.Method, r.URL.Path, s.cfg.SheetPath, err)
	s.metrics.observe(outcomeError, 0)
	http.Error(w, "spreadsheet unavailable", http.StatusInternalServerError)
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".xlsx" {
		return xlsxContentType
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func displayURL(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return addr.String()
	}
	host := "localhost"
	if !tcp.IP.IsUnspecified() && !tcp.IP.IsLoopback() {
		host = tcp.IP.String()
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(tcp.Port))
}
