package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"avatarsurvey/internal/model"
	"avatarsurvey/internal/service"
)

// SessionHandler handles session token, status and transcript endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// SessionTokenRequest is the request body for creating an avatar session token
type SessionTokenRequest struct {
	SurveyID  string `json:"surveyId"`
	SessionID string `json:"sessionId,omitempty"`
}

// CreateToken handles POST /v1/sessions/token
func (h *SessionHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req SessionTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SurveyID == "" {
		writeError(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	token, err := h.sessionSvc.CreateSessionToken(r.Context(), req.SurveyID, req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			writeError(w, http.StatusNotFound, "survey not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"sessionToken": token})
}

// UpdateStatusRequest is the request body for session status transitions
type UpdateStatusRequest struct {
	Status model.SessionStatus `json:"status"`
}

// UpdateStatus handles PUT /v1/sessions/{sessionId}/status
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Status {
	case model.SessionCompleted, model.SessionAbandoned:
	default:
		writeError(w, http.StatusBadRequest, "status must be completed or abandoned")
		return
	}

	session, err := h.sessionSvc.SetStatus(r.Context(), sessionID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Transcript handles GET /v1/sessions/{sessionId}/transcript
func (h *SessionHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	messages, err := h.sessionSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// Audit handles GET /v1/sessions/{sessionId}/audit
func (h *SessionHandler) Audit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	findings, err := h.sessionSvc.Audit(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSurveyNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"findings": findings})
}
