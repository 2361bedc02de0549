package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	appmiddleware "github.com/janisto/avatar-service/internal/middleware"
	"github.com/janisto/avatar-service/internal/platform/auth"
	applog "github.com/janisto/avatar-service/internal/platform/logging"
	"github.com/janisto/avatar-service/internal/respond"
	profilesvc "github.com/janisto/avatar-service/internal/service/profile"
)

func newTestRouter(svc profilesvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ProfileTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, svc, "/v1")
	return router
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func TestCreateProfileSuccess(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	req := authedRequest(http.MethodPost, "/profile", `{"email":"john@example.com","displayName":"john_doe"}`)
	req.Header.Set(chimiddleware.RequestIDHeader, "create-profile-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if location := resp.Header().Get("Location"); location != "/v1/profile" {
		t.Errorf("expected Location /v1/profile, got %s", location)
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.Email != "john@example.com" {
		t.Errorf("expected email john@example.com, got %s", p.Email)
	}
	if p.DisplayName != "john_doe" {
		t.Errorf("expected displayName john_doe, got %s", p.DisplayName)
	}
}

func TestCreateProfileDerivesDisplayName(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	req := authedRequest(http.MethodPost, "/profile", `{"email":"jane.smith@example.com"}`)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.DisplayName != "janesmith" {
		t.Errorf("expected derived displayName janesmith, got %s", p.DisplayName)
	}
}

func TestCreateProfileInvalidDisplayName(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	req := authedRequest(http.MethodPost, "/profile", `{"email":"john@example.com","displayName":"John Doe"}`)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}

	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if problem.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", problem.Status)
	}
}

func TestCreateProfileConflict(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"email":"john@example.com"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/profile", body))
	if resp.Code != http.StatusCreated {
		t.Fatalf("first create failed: %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/profile", body))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateProfileUnauthorized(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(`{"email":"john@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if wwwAuth := resp.Header().Get("WWW-Authenticate"); wwwAuth != "Bearer" {
		t.Errorf("expected WWW-Authenticate: Bearer, got %s", wwwAuth)
	}
}

func TestGetProfileSuccess(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/profile", `{"email":"john@example.com"}`))

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/profile", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.UID != auth.TestUser().UID {
		t.Errorf("expected uid %s, got %s", auth.TestUser().UID, p.UID)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/profile", ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/profile", `{"email":"john@example.com"}`))

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPatch, "/profile", `{"displayName":"johnny"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.DisplayName != "johnny" {
		t.Errorf("expected displayName johnny, got %s", p.DisplayName)
	}
	if p.Email != "john@example.com" {
		t.Errorf("expected email unchanged, got %s", p.Email)
	}
}

func TestUpdateProfileNoFields(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPatch, "/profile", `{}`))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeleteProfile(t *testing.T) {
	svc := profilesvc.NewMockProfileService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/profile", `{"email":"john@example.com"}`))

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodDelete, "/profile", ""))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodDelete, "/profile", ""))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}
