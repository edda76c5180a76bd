package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{
		"http://localhost:3000",
		"http://media.local",
		"http://nas",
		"http://127.0.0.1:8080",
		"http://192.168.1.50",
		"http://10.0.0.2:9000",
		"http://169.254.10.1",
	}
	for _, origin := range allowed {
		if !IsAllowedOrigin(origin) {
			t.Errorf("expected %s to be allowed", origin)
		}
	}

	blocked := []string{
		"http://example.com",
		"https://evil.example.com:443",
		"http://8.8.8.8",
		"",
		"not-a-url",
	}
	for _, origin := range blocked {
		if IsAllowedOrigin(origin) {
			t.Errorf("expected %s to be blocked", origin)
		}
	}
}

func TestHealthRoute(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCORSHeadersForPrivateOrigin(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://192.168.0.10:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://192.168.0.10:3000" {
		t.Fatalf("expected origin echoed back, got %q", got)
	}
}

func TestCORSSkippedForPublicOrigin(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("public origin must not get CORS headers, got %q", got)
	}
}
