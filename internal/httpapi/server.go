// Package httpapi serves the web control surface: job control, settings,
// output file browsing and Prometheus metrics.
package httpapi

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/internal/jobs"
	"github.com/rameshbaboov/french-vocabs/internal/library"
)

type jobSupervisor interface {
	Start(jobType jobs.Type, settings config.Settings) (*jobs.Job, error)
	Stop()
	Status() *jobs.Job
	Tail(maxLines int) string
}

type settingsStore interface {
	GetSettings() config.Settings
	UpdateSettings(next config.Settings) (config.Settings, error)
}

type historyStore interface {
	ListRecent(ctx context.Context, limit int) ([]jobs.Record, error)
}

type Server struct {
	supervisor jobSupervisor
	settings   settingsStore
	lister     *library.Lister
	history    historyStore
	baseDir    string

	uiEnabled   bool
	uiStaticDir string

	mux    *http.ServeMux
	server *http.Server
}

type Option func(*Server)

func WithUI(staticDir string, enabled bool) Option {
	return func(s *Server) {
		s.uiStaticDir = staticDir
		s.uiEnabled = enabled
	}
}

func WithHistory(history historyStore) Option {
	return func(s *Server) {
		s.history = history
	}
}

// NewServer wires the control surface. Relative directories in the
// settings resolve against baseDir, matching the job supervisor.
func NewServer(supervisor jobSupervisor, settings settingsStore, lister *library.Lister, baseDir string, opts ...Option) *Server {
	s := &Server{
		supervisor: supervisor,
		settings:   settings,
		lister:     lister,
		baseDir:    baseDir,
		uiEnabled:  false,
		mux:        http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/jobs", s.handleJobs)
	s.mux.HandleFunc("/api/jobs/stop", s.handleStopJob)
	s.mux.HandleFunc("/api/jobs/current", s.handleCurrentJob)
	s.mux.HandleFunc("/api/jobs/history", s.handleJobHistory)
	s.mux.HandleFunc("/api/settings", s.handleSettings)
	s.mux.HandleFunc("/api/files", s.handleListFiles)
	s.mux.HandleFunc("/api/files/preview", s.handlePreviewFile)
	s.mux.HandleFunc("/api/files/download", s.handleDownloadFile)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/", s.handleStatic)
}

func (s *Server) resolve(dir string) string {
	if filepath.IsAbs(dir) || s.baseDir == "" {
		return dir
	}
	return filepath.Join(s.baseDir, dir)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if !s.uiEnabled || s.uiStaticDir == "" {
		http.NotFound(w, r)
		return
	}

	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	indexPath := filepath.Join(s.uiStaticDir, "index.html")

	if rel == "" || !strings.Contains(filepath.Base(rel), ".") {
		http.ServeFile(w, r, indexPath)
		return
	}

	filePath := filepath.Join(s.uiStaticDir, rel)
	if _, err := os.Stat(filePath); err != nil {
		// SPA fallback: non-existing static file path returns index
		http.ServeFile(w, r, indexPath)
		return
	}
	http.ServeFile(w, r, filePath)
}
