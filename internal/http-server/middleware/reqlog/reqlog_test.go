package reqlog

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func TestReqLog_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(New(logger))
	router.Get("/api/pricing/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pricing/search?service_name=Storage", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}

	out := buf.String()
	for _, want := range []string{"incoming request", "status=418", "size=15", "remote_addr=203.0.113.7", "path=/api/pricing/search"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestReqLog_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := New(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("handler without WriteHeader should log 200:\n%s", buf.String())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name          string
		remoteAddr    string
		xForwardedFor string
		expected      string
	}{
		{"remote with port", "192.168.1.1:12345", "", "192.168.1.1"},
		{"remote without port", "192.168.1.1", "", "192.168.1.1"},
		{"ipv6 remote", "[::1]:8080", "", "::1"},
		{"forwarded single", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "10.0.0.1:80", " 203.0.113.7 , 198.51.100.2", "203.0.113.7"},
		{"forwarded with port", "10.0.0.1:80", "203.0.113.7:5555", "203.0.113.7"},
		{"forwarded empty entry", "10.0.0.1:80", ", 198.51.100.2", "10.0.0.1"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClientIP(tt.remoteAddr, tt.xForwardedFor); got != tt.expected {
				t.Errorf("ClientIP(%q, %q) = %q, want %q", tt.remoteAddr, tt.xForwardedFor, got, tt.expected)
			}
		})
	}
}
