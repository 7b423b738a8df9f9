package http

import (
	"fmt"
	"net/http"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

type RenderHandler struct {
	renderer domain.RenderService
	editor   domain.EditorService
	logger   logger.Logger
}

func NewRenderHandler(renderer domain.RenderService, editor domain.EditorService, logger logger.Logger) *RenderHandler {
	return &RenderHandler{
		renderer: renderer,
		editor:   editor,
		logger:   logger,
	}
}

func (h *RenderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/composition.render", h.handleRender)
}

// handleRender returns the authoritative document as a download. GET renders
// the session composition, POST the composition in the body.
func (h *RenderHandler) handleRender(w http.ResponseWriter, r *http.Request) {
	var composition domain.Composition

	switch r.Method {
	case http.MethodGet:
		composition = h.editor.GetComposition(r.Context())
	case http.MethodPost:
		if err := decodeJSON(w, r, &composition); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	default:
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.renderer.Render(r.Context(), composition)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render email")
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.HTML))
}
