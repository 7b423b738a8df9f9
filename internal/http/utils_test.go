package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
	}{
		{"bad request", "Invalid request body", http.StatusBadRequest},
		{"not found", "section not found", http.StatusNotFound},
		{"empty message", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteJSONError(w, tt.message, tt.statusCode)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.message, response["error"])
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     domain.NewValidationError("title is required"),
			status:  http.StatusBadRequest,
			message: "validation error: title is required",
		},
		{
			name:   "wrapped index out of range",
			err:    fmt.Errorf("reorder: %w", domain.ErrIndexOutOfRange),
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid kind",
			err:    domain.ErrInvalidSectionKind,
			status: http.StatusBadRequest,
		},
		{
			name:    "section not found",
			err:     &domain.ErrSectionNotFound{ID: "s1"},
			status:  http.StatusNotFound,
			message: "section not found with ID: s1",
		},
		{
			name:    "upload failed",
			err:     &domain.ErrUploadFailed{SectionID: "s1", Err: errors.New("bucket unreachable")},
			status:  http.StatusBadGateway,
			message: "Failed to store image",
		},
		{
			name:    "render failed",
			err:     &domain.ErrRenderFailed{Stage: "liquid", Err: errors.New("undefined variable")},
			status:  http.StatusInternalServerError,
			message: "Failed to render email",
		},
		{
			name:    "layout",
			err:     emailtemplate.ErrMissingSectionBlock,
			status:  http.StatusInternalServerError,
			message: "Layout is invalid",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "Something failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(w, logger.NewTestLogger(t), tt.err, "Something failed")

			assert.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				var response map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.message, response["error"])
			}
		})
	}
}
