package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

// multipartOverhead leaves room for form fields and boundaries
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploads     domain.UploadService
	maxSize     int64
	apiEndpoint string
	logger      logger.Logger
}

// NewUploadHandler builds the upload routes. apiEndpoint, when set, is the
// public origin for host relative image URLs, otherwise the request host is.
func NewUploadHandler(uploads domain.UploadService, maxSize int64, apiEndpoint string, logger logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploads:     uploads,
		maxSize:     maxSize,
		apiEndpoint: apiEndpoint,
		logger:      logger,
	}
}

func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/uploads.image", h.handleUploadImage)
}

func (h *UploadHandler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, fmt.Sprintf("file exceeds maximum size of %d bytes", h.maxSize), http.StatusRequestEntityTooLarge)
			return
		}
		WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	composition, url, err := h.uploads.UploadImage(r.Context(), domain.UploadImageRequest{
		SectionID:    r.FormValue("section_id"),
		Filename:     header.Filename,
		Size:         header.Size,
		Body:         file,
		PublicOrigin: h.publicOrigin(r),
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to upload image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":         url,
		"composition": composition,
	})
}

// publicOrigin is the scheme and host clients reached the service on
func (h *UploadHandler) publicOrigin(r *http.Request) string {
	if h.apiEndpoint != "" {
		return h.apiEndpoint
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}
