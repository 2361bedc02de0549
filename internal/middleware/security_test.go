package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveSecurity(h http.Handler, method, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(method, path, nil))
	return resp
}

func TestSecuritySetsHeaders(t *testing.T) {
	h := Security()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	resp := serveSecurity(h, http.MethodGet, "/test")

	want := map[string]string{
		"Cache-Control":                "no-store",
		"Content-Security-Policy":      "frame-ancestors 'none'",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Resource-Policy": "same-origin",
		"Permissions-Policy":           "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
		"Referrer-Policy":              "strict-origin-when-cross-origin",
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              "DENY",
	}
	for header, value := range want {
		if got := resp.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestSecurityPreservesDownstreamResponse(t *testing.T) {
	h := Security()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom", "value")
		w.Header().Set("Cache-Control", "max-age=3600")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("test body"))
	}))
	resp := serveSecurity(h, http.MethodPost, "/test")

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.Code)
	}
	if resp.Header().Get("X-Custom") != "value" {
		t.Fatal("expected downstream X-Custom header to survive")
	}
	if got := resp.Header().Get("Cache-Control"); got != "max-age=3600" {
		t.Fatalf("downstream Cache-Control overridden: %q", got)
	}
	if resp.Body.String() != "test body" {
		t.Fatal("expected downstream body to survive")
	}
}

func TestSecuritySkipsExcludedPaths(t *testing.T) {
	h := Security("/v1/api-docs", "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path        string
		wantHeaders bool
	}{
		{"/v1/api-docs", false},
		{"/v1/api-docs/", false},
		{"/health", false},
		{"/health/live", false},
		{"/v1/profile", true},
		{"/v1/avatar/session", true},
	}

	for _, tc := range tests {
		resp := serveSecurity(h, http.MethodGet, tc.path)
		hasHeaders := resp.Header().Get("X-Content-Type-Options") == "nosniff"
		if hasHeaders != tc.wantHeaders {
			t.Errorf("%s: headers present = %v, want %v", tc.path, hasHeaders, tc.wantHeaders)
		}
	}
}
