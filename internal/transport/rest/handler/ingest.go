package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"avatarsurvey/internal/model"
	"avatarsurvey/internal/service"
)

// IngestHandler handles the participant-facing ingest endpoint
type IngestHandler struct {
	ingestSvc *service.IngestService
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestSvc *service.IngestService) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc}
}

// Ingest handles POST /v1/ingest
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req model.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.IngestResponse{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.ingestSvc.Process(r.Context(), &req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnknownIngestKind) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, model.IngestResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, model.IngestResponse{Success: true})
}
