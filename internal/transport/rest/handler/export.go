package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"avatarsurvey/internal/service"
)

// ExportHandler handles CSV export endpoints
type ExportHandler struct {
	exportSvc *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportSvc *service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Export handles GET /v1/export/{sessionId}
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	csv, err := h.exportSvc.ExportSessionCSV(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.exportSvc.Filename(sessionID)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}
