package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"avatarsurvey/internal/config"
	"avatarsurvey/internal/service"
	"avatarsurvey/internal/transport/ws"
)

func testRouter() http.Handler {
	authSvc := service.NewAuthService(&config.ServerConfig{
		AdminUsername: "admin",
		AdminPassword: "secret",
		JWTSecret:     "test-jwt-secret",
	})
	return NewRouter(&Container{
		AuthService:    authSvc,
		SurveyService:  service.NewSurveyService(nil, nil),
		SessionService: service.NewSessionService(nil, nil, nil, nil, nil, nil),
		IngestService:  service.NewIngestService(nil, nil, nil, nil),
		ExportService:  service.NewExportService(nil, nil, nil),
		WSHub:          ws.NewHub(),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest("POST", "/v1/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token   string `json:"token"`
		AdminID string `json:"adminId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.AdminID == "" {
		t.Errorf("incomplete login response: %+v", resp)
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest("POST", "/v1/auth/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := testRouter()

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/v1/surveys"},
		{"GET", "/v1/surveys"},
		{"DELETE", "/v1/surveys/abc"},
		{"GET", "/v1/sessions/abc/transcript"},
		{"GET", "/v1/sessions/abc/audit"},
		{"GET", "/v1/export/abc"},
	}
	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", rt.method, rt.path, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest("OPTIONS", "/v1/ingest", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Access-Control-Allow-Origin header missing")
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Error("Access-Control-Allow-Methods missing POST")
	}
}
