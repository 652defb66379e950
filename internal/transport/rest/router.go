package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"avatarsurvey/internal/service"
	"avatarsurvey/internal/transport/rest/handler"
	"avatarsurvey/internal/transport/rest/middleware"
	"avatarsurvey/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SurveyService  *service.SurveyService
	SessionService *service.SessionService
	IngestService  *service.IngestService
	ExportService  *service.ExportService
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	ingestHandler := handler.NewIngestHandler(c.IngestService)
	exportHandler := handler.NewExportHandler(c.ExportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SessionService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes (participant flow)
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/token", sessionHandler.CreateToken).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/status", sessionHandler.UpdateStatus).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/ingest", ingestHandler.Ingest).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket routes (admin token in query param)
	v1.HandleFunc("/ws/sessions/{sessionId}/observe", wsHandler.ObserveWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/transcript", sessionHandler.Transcript).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/audit", sessionHandler.Audit).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/export/{sessionId}", exportHandler.Export).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
