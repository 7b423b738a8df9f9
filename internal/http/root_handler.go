package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Notifuse/emailcomposer/pkg/logger"
)

type RootHandler struct {
	consoleDir  string
	uploadDir   string
	uploadPath  string
	logger      logger.Logger
	apiEndpoint string
	version     string
}

// NewRootHandler creates a root handler serving the console SPA and, when
// uploadDir is set, the locally stored images under uploadPath
func NewRootHandler(
	consoleDir string,
	uploadDir string,
	uploadPath string,
	logger logger.Logger,
	apiEndpoint string,
	version string,
) *RootHandler {
	if uploadPath == "" {
		uploadPath = "/uploads/"
	}
	if !strings.HasSuffix(uploadPath, "/") {
		uploadPath += "/"
	}
	return &RootHandler{
		consoleDir:  consoleDir,
		uploadDir:   uploadDir,
		uploadPath:  uploadPath,
		logger:      logger,
		apiEndpoint: apiEndpoint,
		version:     version,
	}
}

func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// 1. Handle /console/* - serve console SPA
	if strings.HasPrefix(r.URL.Path, "/console") {
		h.serveConsole(w, r)
		return
	}

	// 2. Handle /api/*
	if strings.HasPrefix(r.URL.Path, "/api") {
		if r.URL.Path == "/api" || r.URL.Path == "/api/" {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "api running",
			})
			return
		}
		WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	if r.URL.Path == "/" {
		http.Redirect(w, r, "/console", http.StatusTemporaryRedirect)
		return
	}

	http.NotFound(w, r)
}

// serveConfigJS exposes the API endpoint and version to the console
func (h *RootHandler) serveConfigJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	configJS := fmt.Sprintf(
		"window.API_ENDPOINT = %q;\nwindow.VERSION = %q;",
		h.apiEndpoint,
		h.version,
	)
	_, _ = w.Write([]byte(configJS))
}

func (h *RootHandler) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// serveConsole handles serving static files, with a fallback for SPA routing
func (h *RootHandler) serveConsole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Strip /console prefix before serving files
	originalPath := r.URL.Path
	r.URL.Path = strings.TrimPrefix(r.URL.Path, "/console")
	if r.URL.Path == "" {
		r.URL.Path = "/"
	}

	fs := http.FileServer(http.Dir(h.consoleDir))

	path := filepath.Join(h.consoleDir, filepath.FromSlash(r.URL.Path))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// If the requested file doesn't exist, serve index.html for SPA routing
		r.URL.Path = "/"
	}

	h.logger.WithField("original_path", originalPath).WithField("served_path", r.URL.Path).Debug("Serving console")

	fs.ServeHTTP(w, r)
}

// serveUploads serves stored images. Directory listings are not exposed.
func (h *RootHandler) serveUploads() http.Handler {
	files := http.StripPrefix(h.uploadPath, http.FileServer(http.Dir(h.uploadDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/config.js", h.serveConfigJS)
	mux.HandleFunc("/healthz", h.serveHealth)
	if h.uploadDir != "" {
		mux.Handle(h.uploadPath, h.serveUploads())
	}
	// catch all route
	mux.HandleFunc("/", h.Handle)
}
