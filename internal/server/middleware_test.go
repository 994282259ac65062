package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIKeyAuthErrorBodies(t *testing.T) {
	handler := APIKeyAuth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		key    string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, `{"error":"missing API key"}`},
		{"wrong", "nope", http.StatusForbidden, `{"error":"invalid API key"}`},
		{"valid", "secret", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" {
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("content type = %q", ct)
				}
				if got := rec.Body.String(); got != tt.body+"\n" {
					t.Errorf("body = %q, want %q", got, tt.body)
				}
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached the inner handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/profiles", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); methods != "GET, POST, PUT, OPTIONS" {
		t.Errorf("allow methods = %q", methods)
	}
}
