package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

// maxJSONBodySize bounds request bodies carrying a full composition
const maxJSONBodySize = 4 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeHTML writes an HTML document with status 200
func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", domain.RenderContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps a service error to a status code. Collaborator
// failures are logged here, client errors are not.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	var validationErr domain.ValidationError
	var notFoundErr *domain.ErrSectionNotFound
	var uploadErr *domain.ErrUploadFailed
	var renderErr *domain.ErrRenderFailed

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidSectionKind),
		errors.Is(err, domain.ErrInvalidSectionField):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		WriteJSONError(w, notFoundErr.Error(), http.StatusNotFound)
	case errors.As(err, &uploadErr):
		log.WithField("error", err.Error()).Error("Upload collaborator failed")
		WriteJSONError(w, "Failed to store image", http.StatusBadGateway)
	case errors.As(err, &renderErr):
		log.WithField("error", err.Error()).Error("Render failed")
		WriteJSONError(w, "Failed to render email", http.StatusInternalServerError)
	case isLayoutError(err):
		log.WithField("error", err.Error()).Error("Layout is invalid")
		WriteJSONError(w, "Layout is invalid", http.StatusInternalServerError)
	default:
		log.WithField("error", err.Error()).Error(fallback)
		WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}

func isLayoutError(err error) bool {
	return errors.Is(err, emailtemplate.ErrEmptyLayout) ||
		errors.Is(err, emailtemplate.ErrMissingSectionBlock) ||
		errors.Is(err, emailtemplate.ErrMultipleSectionBlocks) ||
		errors.Is(err, emailtemplate.ErrUnterminatedSectionBlock)
}
