package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	appmiddleware "github.com/janisto/avatar-service/internal/middleware"
	"github.com/janisto/avatar-service/internal/platform/auth"
	applog "github.com/janisto/avatar-service/internal/platform/logging"
	"github.com/janisto/avatar-service/internal/respond"
	"github.com/janisto/avatar-service/internal/service/avatarsession"
	profilesvc "github.com/janisto/avatar-service/internal/service/profile"
	"github.com/janisto/avatar-service/internal/service/profilesync"
	"github.com/janisto/avatar-service/internal/service/storage"
)

type noopRemover struct{}

func (noopRemover) Remove(_ context.Context, identity profilesync.Identity) (*profilesync.Identity, error) {
	cleared := identity
	cleared.PhotoURL = ""
	return &cleared, nil
}

type noopSyncer struct{}

func (noopSyncer) Sync(_ context.Context, identity profilesync.Identity, photoURL string) (*profilesync.Identity, error) {
	refreshed := identity
	refreshed.PhotoURL = photoURL
	return &refreshed, nil
}

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("RoutesTest", "test"))

	sessions := avatarsession.NewManager(&storage.MockUploader{}, noopSyncer{})
	Register(api,
		&auth.MockVerifier{User: auth.TestUser()},
		profilesvc.NewMockProfileService(),
		sessions,
		noopRemover{},
	)
	return router
}

func TestRegisterRoutesProfile(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "routes-profile")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// No profile exists yet; the route resolving to the handler is the point.
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestRegisterRoutesAvatar(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/avatar", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "routes-avatar")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestRegisterRoutesRequireAuth(t *testing.T) {
	router := newTestRouter()

	for _, target := range []string{"/profile", "/avatar/session/some-id"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without a token, got %d", target, resp.Code)
		}
	}
}
