package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"CONVERSOR_BACK-END/internal/config"
	"CONVERSOR_BACK-END/internal/handlers"
	"CONVERSOR_BACK-END/internal/middleware"
	"CONVERSOR_BACK-END/internal/store"
	"CONVERSOR_BACK-END/internal/testutil"
)

var jwtCfg = &config.JWTConfig{Secret: "handlers-test-secret", AccessTokenTTL: time.Hour}

func bearerFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := middleware.GenerateToken(userID, userID.String()+"@example.com", jwtCfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, bearer, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestProfileEndToEnd(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	handler := middleware.AuthMiddleware(
		handlers.NewProfileHandler(store.NewProfileStore(pool)).Handle, jwtCfg)

	userID := testutil.CreateAuthUser(t, pool, "Grace")
	bearer := bearerFor(t, userID)

	// Read own profile
	rec, body := doJSON(t, handler, http.MethodGet, "/api/profile", bearer, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET expected 200, got %d: %v", rec.Code, body)
	}
	profile := body["profile"].(map[string]any)
	if profile["id"] != userID.String() {
		t.Errorf("expected own id, got %v", profile["id"])
	}
	if profile["name"] != "Grace" {
		t.Errorf("expected name from signup metadata, got %v", profile["name"])
	}

	// Update display name
	rec, body = doJSON(t, handler, http.MethodPut, "/api/profile", bearer, `{"name":"Grace H."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT expected 200, got %d: %v", rec.Code, body)
	}
	if body["profile"].(map[string]any)["name"] != "Grace H." {
		t.Errorf("expected updated name, got %v", body)
	}

	// No POST or DELETE on profiles
	rec, _ = doJSON(t, handler, http.MethodPost, "/api/profile", bearer, `{}`)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST expected 405, got %d", rec.Code)
	}
	rec, _ = doJSON(t, handler, http.MethodDelete, "/api/profile", bearer, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE expected 405, got %d", rec.Code)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	handler := middleware.AuthMiddleware(
		handlers.NewProfileHandler(store.NewProfileStore(pool)).Handle, jwtCfg)

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestProfileOwnerScoping(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	handler := middleware.AuthMiddleware(
		handlers.NewProfileHandler(store.NewProfileStore(pool)).Handle, jwtCfg)

	testutil.CreateAuthUser(t, pool, "victim")

	// A valid token for an id with no rows sees nothing, not someone
	// else's profile
	stranger := uuid.New()
	rec, _ := doJSON(t, handler, http.MethodGet, "/api/profile", bearerFor(t, stranger), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign requester, got %d", rec.Code)
	}
}

func TestPreferenceEndToEnd(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	handler := middleware.AuthMiddleware(
		handlers.NewPreferenceHandler(store.NewPreferenceStore(pool)).Handle, jwtCfg)

	userID := testutil.CreateAuthUser(t, pool, "Linus")
	bearer := bearerFor(t, userID)

	// Nothing saved yet
	rec, _ := doJSON(t, handler, http.MethodGet, "/api/preferences", bearer, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET before save expected 404, got %d", rec.Code)
	}

	// First save inserts; codes are normalized
	rec, body := doJSON(t, handler, http.MethodPut, "/api/preferences", bearer,
		`{"default_from":" usd ","default_to":"eur"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT expected 200, got %d: %v", rec.Code, body)
	}
	pref := body["preference"].(map[string]any)
	if pref["default_from"] != "USD" || pref["default_to"] != "EUR" {
		t.Errorf("expected normalized pair, got %v", pref)
	}

	// Second save updates the same row
	rec, body = doJSON(t, handler, http.MethodPut, "/api/preferences", bearer,
		`{"default_from":"MXN","default_to":"ARS"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second PUT expected 200, got %d: %v", rec.Code, body)
	}

	rec, body = doJSON(t, handler, http.MethodGet, "/api/preferences", bearer, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET expected 200, got %d", rec.Code)
	}
	pref = body["preference"].(map[string]any)
	if pref["default_from"] != "MXN" || pref["default_to"] != "ARS" {
		t.Errorf("expected updated pair, got %v", pref)
	}
}

func TestPreferenceRejectsUnsupportedCode(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	handler := middleware.AuthMiddleware(
		handlers.NewPreferenceHandler(store.NewPreferenceStore(pool)).Handle, jwtCfg)

	userID := testutil.CreateAuthUser(t, pool, "picky")
	bearer := bearerFor(t, userID)

	for _, body := range []string{
		`{"default_from":"XYZ","default_to":"EUR"}`,
		`{"default_from":"USD","default_to":""}`,
		`{"default_from":"","default_to":""}`,
	} {
		rec, _ := doJSON(t, handler, http.MethodPut, "/api/preferences", bearer, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestPreferenceWithoutProfileIs404(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	handler := middleware.AuthMiddleware(
		handlers.NewPreferenceHandler(store.NewPreferenceStore(pool)).Handle, jwtCfg)

	// Valid token, but the auth user was never mirrored
	rec, _ := doJSON(t, handler, http.MethodPut, "/api/preferences", bearerFor(t, uuid.New()),
		`{"default_from":"USD","default_to":"EUR"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without profile, got %d", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := handlers.NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("livez expected 200, got %d", rec.Code)
	}
}

func TestReadinessChecksDatabase(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	h := handlers.NewHealthHandler(pool)

	rec := httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readyz expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
