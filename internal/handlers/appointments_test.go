package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roofingcity-backend/internal/cache"
	"roofingcity-backend/internal/config"
	"roofingcity-backend/internal/validation"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return &Server{
		Cfg: &config.Config{
			BusinessName:  "Roofing City",
			BusinessPhone: "(123) 456-7890",
			Timezone:      loc,
		},
		Val:   validation.New(),
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cache: cache.NewNoop(),
	}
}

func postJSON(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ScheduleAppointment(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return out
}

func TestScheduleAppointmentInvalidJSON(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, `{"name": "Jane"`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestScheduleAppointmentRejectsExtraFields(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, `{"name":"Jane","email":"jane@example.com","phone":"555","preferredDate":"2099-01-05","preferredTime":"09:00","bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScheduleAppointmentMissingFields(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name string
		body string
	}{
		{"empty", `{}`},
		{"no name", `{"email":"jane@example.com","phone":"555","preferredDate":"2099-01-05","preferredTime":"09:00"}`},
		{"no email", `{"name":"Jane","phone":"555","preferredDate":"2099-01-05","preferredTime":"09:00"}`},
		{"no phone", `{"name":"Jane","email":"jane@example.com","preferredDate":"2099-01-05","preferredTime":"09:00"}`},
		{"no date", `{"name":"Jane","email":"jane@example.com","phone":"555","preferredTime":"09:00"}`},
		{"no time", `{"name":"Jane","email":"jane@example.com","phone":"555","preferredDate":"2099-01-05"}`},
		{"whitespace name", `{"name":"   ","email":"jane@example.com","phone":"555","preferredDate":"2099-01-05","preferredTime":"09:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, s, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			body := decodeBody(t, rec)
			if body["error"] != missingFieldsMessage {
				t.Errorf("error = %q, want %q", body["error"], missingFieldsMessage)
			}
		})
	}
}

func TestScheduleAppointmentBadFormats(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"name":"Jane","email":"not-an-email","phone":"555","preferredDate":"2099-01-05","preferredTime":"09:00"}`},
		{"bad date", `{"name":"Jane","email":"jane@example.com","phone":"555","preferredDate":"01/05/2099","preferredTime":"09:00"}`},
		{"bad time", `{"name":"Jane","email":"jane@example.com","phone":"555","preferredDate":"2099-01-05","preferredTime":"9am"}`},
		{"bad confirm slot", `{"name":"Jane","email":"jane@example.com","phone":"555","preferredDate":"2099-01-05","preferredTime":"09:00","confirmTimeSlot":"tomorrow"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, s, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			body := decodeBody(t, rec)
			if body["error"] != "validation error" {
				t.Errorf("error = %q, want %q", body["error"], "validation error")
			}
		})
	}
}

func TestScheduleAppointmentPastDate(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, `{"name":"Jane","email":"jane@example.com","phone":"555","preferredDate":"2020-06-15","preferredTime":"09:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody(t, rec)
	if body["error"] != pastDateMessage {
		t.Errorf("error = %q, want %q", body["error"], pastDateMessage)
	}
}

func TestGetAppointmentMissingID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/", nil)
	rec := httptest.NewRecorder()
	s.GetAppointment(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
