package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newRouterServer(t *testing.T) http.Handler {
	t.Helper()
	s := newTestServer(t)
	s.Cfg.JWTSecret = "test-secret"
	s.Cfg.RateLimitAppointments = 100
	s.Cfg.RateLimitContact = 100
	s.Cfg.RateLimitWindowSec = 60
	return s.Routes()
}

func TestRouterMethodNotAllowed(t *testing.T) {
	h := newRouterServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "Method not allowed" {
		t.Errorf("error = %q, want %q", body["error"], "Method not allowed")
	}
}

func TestRouterPreflight(t *testing.T) {
	h := newRouterServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "https://roofingcity.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want %q", got, "*")
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
		t.Errorf("allow-headers = %q", got)
	}
}

func TestRouterAdminRequiresAuth(t *testing.T) {
	h := newRouterServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/appointments", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
