package http

import (
	"net/http"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

// LayoutHandler exposes the layout document as loaded, so clients can show
// or preview it themselves
type LayoutHandler struct {
	layouts domain.LayoutSource
	logger  logger.Logger
}

func NewLayoutHandler(layouts domain.LayoutSource, logger logger.Logger) *LayoutHandler {
	return &LayoutHandler{
		layouts: layouts,
		logger:  logger,
	}
}

func (h *LayoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/layout.get", h.handleGet)
}

func (h *LayoutHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	layout, err := h.layouts.Layout(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"layout": layout.Source,
		"format": layout.Format,
	})
}
