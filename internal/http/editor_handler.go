package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

type EditorHandler struct {
	editor    domain.EditorService
	snapshots domain.SnapshotService
	logger    logger.Logger
}

func NewEditorHandler(editor domain.EditorService, snapshots domain.SnapshotService, logger logger.Logger) *EditorHandler {
	return &EditorHandler{
		editor:    editor,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (h *EditorHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/composition.get", h.handleGet)
	mux.HandleFunc("/api/composition.update", h.handleUpdate)
	mux.HandleFunc("/api/composition.reset", h.handleReset)
	mux.HandleFunc("/api/composition.preview", h.handlePreview)
	mux.HandleFunc("/api/composition.save", h.handleSave)
	mux.HandleFunc("/api/sections.add", h.handleAddSection)
	mux.HandleFunc("/api/sections.update", h.handleUpdateSection)
	mux.HandleFunc("/api/sections.remove", h.handleRemoveSection)
	mux.HandleFunc("/api/sections.reorder", h.handleReorderSections)
}

func (h *EditorHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"composition": h.editor.GetComposition(r.Context()),
	})
}

func (h *EditorHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var settings domain.CompositionSettings
	if err := decodeJSON(w, r, &settings); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	composition, err := h.editor.UpdateSettings(r.Context(), settings)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update composition")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"composition": composition,
	})
}

func (h *EditorHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"composition": h.editor.Reset(r.Context()),
	})
}

func (h *EditorHandler) handleAddSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.AddSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	composition, section, err := h.editor.AddSection(r.Context(), req.Type)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to add section")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"composition": composition,
		"section":     section,
	})
}

func (h *EditorHandler) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	composition, err := h.editor.UpdateSection(r.Context(), req.ID, req.Field, req.Value)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update section")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"composition": composition,
	})
}

func (h *EditorHandler) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RemoveSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	composition, err := h.editor.RemoveSection(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to remove section")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"composition": composition,
	})
}

func (h *EditorHandler) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ReorderSectionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	from, to, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	composition, err := h.editor.ReorderSections(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to reorder sections")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"composition": composition,
	})
}

// handlePreview renders the session composition on GET and the posted
// composition on POST
func (h *EditorHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var composition *domain.Composition

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		composition = &domain.Composition{}
		if err := decodeJSON(w, r, composition); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	default:
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html, err := h.editor.Preview(r.Context(), composition)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render preview")
		return
	}

	writeHTML(w, html)
}

// handleSave logs the posted snapshot, or the session composition when the
// body is empty
func (h *EditorHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(raw) == 0 {
		raw, err = json.Marshal(h.editor.GetComposition(r.Context()))
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to encode composition")
			return
		}
	}

	ack, err := h.snapshots.Log(r.Context(), raw)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to save composition")
		return
	}

	writeJSON(w, http.StatusOK, ack)
}
