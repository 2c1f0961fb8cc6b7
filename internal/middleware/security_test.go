package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurity_Headers(t *testing.T) {
	h := Security(false)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("expected DENY, got %q", got)
	}

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS header in production mode")
	}
}

func TestSecurity_NoHSTSInDevelopment(t *testing.T) {
	h := Security(true)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("expected no HSTS header in development mode")
	}
}
