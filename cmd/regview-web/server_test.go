package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GPIO1.json"), []byte(`{
  "name": "GPIO1",
  "groupName": "GPIO",
  "registers": [{"name": "DR", "addressOffset": 0,
    "fields": [{"name": "PIN0", "bitOffset": 0, "bitWidth": 1}]}]
}`), 0644); err != nil {
		t.Fatal(err)
	}

	srv, err := NewServer(ServerConfig{
		Addr:     "127.0.0.1:0",
		DataPath: dir,
		Version:  "1.0.0-test",
	})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", resp["status"])
	}
	if resp["version"] != "1.0.0-test" {
		t.Errorf("Expected version '1.0.0-test', got %q", resp["version"])
	}
}

func TestHealthEndpointMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestInfoEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["peripherals"] != float64(1) {
		t.Errorf("Expected 1 peripheral, got %v", resp["peripherals"])
	}
	if s, _ := resp["session"].(string); len(s) != 36 {
		t.Errorf("Expected a UUID session, got %v", resp["session"])
	}
}

func TestRoutesWired(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/dashboard", http.StatusOK},
		{http.MethodGet, "/api/v1/groups/GPIO", http.StatusOK},
		{http.MethodGet, "/api/v1/peripherals/GPIO1", http.StatusOK},
		{http.MethodGet, "/api/v1/peripherals/GPIO1/registers/DR", http.StatusOK},
		{http.MethodGet, "/api/v1/nav?path=GPIO/GPIO1/DR", http.StatusOK},
		{http.MethodPost, "/api/v1/reload", http.StatusOK},
		{http.MethodGet, "/api/v1/reload", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			srv.mux.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestStaticFallsBackToIndex(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/GPIO/GPIO1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<title>regview</title>") {
			t.Errorf("%s: expected index.html", path)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("app.js content type = %q", ct)
	}
}

func TestNewServerBadData(t *testing.T) {
	_, err := NewServer(ServerConfig{DataPath: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Error("expected error for missing dataset")
	}
}
