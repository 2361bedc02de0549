package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apiinternal "github.com/janisto/avatar-service/internal/api"
	appmiddleware "github.com/janisto/avatar-service/internal/middleware"
)

func TestInstalledErrorsCarryEnvelope(t *testing.T) {
	Install()

	err := huma.NewError(http.StatusBadRequest, "bad request", errors.New("missing field"))
	env, ok := err.(*statusEnvelopeError)
	if !ok {
		t.Fatalf("expected statusEnvelopeError, got %T", err)
	}

	if env.status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.status)
	}
	if env.Envelope.Error == nil || env.Envelope.Error.Code == "" {
		t.Fatalf("expected populated error body, got %+v", env.Envelope.Error)
	}
	if env.Envelope.Error.Message != "bad request" {
		t.Fatalf("message = %q", env.Envelope.Error.Message)
	}
	if len(env.Envelope.Error.Details) != 1 || env.Envelope.Error.Details[0].Issue != "missing field" {
		t.Fatalf("details = %+v", env.Envelope.Error.Details)
	}
}

func TestWriteRedirect(t *testing.T) {
	Install()

	rec := httptest.NewRecorder()
	if err := WriteRedirect(rec, context.Background(), http.StatusFound, "/dest", ""); err != nil {
		t.Fatalf("write redirect failed: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/dest" {
		t.Fatalf("Location = %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}

	var env apiinternal.Envelope[struct{}]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if env.Error == nil || env.Error.Code != codeRedirect {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
}

func TestFallbackHandlersEmitEnvelopes(t *testing.T) {
	Install()

	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		Recoverer(),
	)
	router.Get("/", func(http.ResponseWriter, *http.Request) {})
	api := humachi.New(router, huma.DefaultConfig("Test", "test"))
	huma.Get(api, "/panic", func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		panic("boom")
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"unknown path", http.MethodGet, "/missing", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/", http.StatusMethodNotAllowed},
		{"panicking handler", http.MethodGet, "/panic", http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
			if resp.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.Code, tc.wantStatus)
			}

			var env apiinternal.Envelope[struct{}]
			if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
				t.Fatalf("body is not an envelope: %v", err)
			}
			if env.Error == nil {
				t.Fatal("expected error body in envelope")
			}
		})
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	Install()

	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/", func(http.ResponseWriter, *http.Request) {})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/", nil))

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); allow == "" {
		t.Fatal("expected Allow header on 405")
	}
}

func TestMessageOrDefault(t *testing.T) {
	if got := messageOrDefault(499, ""); got != "HTTP 499" {
		t.Fatalf("unknown status fallback = %q, want HTTP 499", got)
	}
	if got := messageOrDefault(http.StatusNotFound, ""); got != "Not Found" {
		t.Fatalf("known status fallback = %q", got)
	}
	if got := messageOrDefault(200, "custom"); got != "custom" {
		t.Fatalf("explicit message lost: %q", got)
	}
}
