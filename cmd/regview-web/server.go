package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/regview/regview-go/cmd/regview-web/api"
	"github.com/regview/regview-go/internal/viewer"
	"github.com/regview/regview-go/pkg/log"
)

//go:embed static/*
var staticFiles embed.FS

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr           string
	DataPath       string
	CategoriesPath string
	Version        string

	// Trace receives navigation trace events. Nil disables tracing.
	Trace log.Logger
}

// Server is the HTTP server for the register viewer.
type Server struct {
	config   ServerConfig
	mux      *http.ServeMux
	server   *http.Server
	trace    *log.Session
	viewsAPI *api.ViewsAPI
}

// NewServer loads the dataset and creates a server for it.
func NewServer(cfg ServerConfig) (*Server, error) {
	v, err := viewer.Open(viewer.Config{DataPath: cfg.DataPath, CategoriesPath: cfg.CategoriesPath})
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	trace := log.NewSession(cfg.Trace, "web")
	trace.Load(v.LoadData())

	s := &Server{
		config:   cfg,
		mux:      http.NewServeMux(),
		trace:    trace,
		viewsAPI: api.NewViewsAPI(v, trace),
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/info", s.handleInfo)

	s.mux.HandleFunc("/api/v1/dashboard", s.viewsAPI.HandleDashboard)
	s.mux.HandleFunc("/api/v1/groups/{group}", s.viewsAPI.HandleGroup)
	s.mux.HandleFunc("/api/v1/peripherals/{name}", s.viewsAPI.HandlePeripheral)
	s.mux.HandleFunc("/api/v1/peripherals/{name}/registers/{register}", s.viewsAPI.HandleRegister)
	s.mux.HandleFunc("/api/v1/nav", s.viewsAPI.HandleNav)
	s.mux.HandleFunc("/api/v1/reload", s.viewsAPI.HandleReload)

	// Static files and SPA
	s.mux.HandleFunc("/", s.handleStatic)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

// handleInfo describes the loaded dataset.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		api.LoadResponse
		Session string `json:"session"`
	}{api.LoadSummary(s.viewsAPI.Viewer()), s.trace.ID()})
}

// handleStatic serves static files and the SPA.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "unknown endpoint"})
		return
	}

	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filePath := strings.TrimPrefix(path, "/")

	file, err := staticFS.Open(filePath)
	if err != nil {
		// Fall back to index.html for SPA routing
		filePath = "index.html"
	} else {
		file.Close()
	}

	switch {
	case strings.HasSuffix(filePath, ".html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case strings.HasSuffix(filePath, ".css"):
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	case strings.HasSuffix(filePath, ".js"):
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	}

	http.ServeFileFS(w, r, staticFS, filePath)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
