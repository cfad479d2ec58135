package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/musclemap/musclemap/internal/config"
	"github.com/musclemap/musclemap/internal/handler"
	"github.com/musclemap/musclemap/internal/utils"
)

const testSecret = "router-test-secret"

type testServer struct {
	e         *echo.Echo
	users     *fakeUsers
	groups    *fakeGroups
	muscles   *fakeMuscles
	exercises *fakeExercises
	programs  *fakePrograms
}

func newTestServer() *testServer {
	cfg := config.Config{
		JWTSecret:        testSecret,
		AccessTTLMin:     30,
		BcryptCost:       bcrypt.MinCost,
		DefaultPageLimit: 20,
	}
	users := newFakeUsers()
	groups := newFakeGroups()
	muscles := newFakeMuscles(groups)
	exercises := newFakeExercises(groups, muscles)
	programs := newFakePrograms()

	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(cfg, users), nil)
	RegisterCatalog(e,
		handler.NewMuscleHandler(groups, muscles, cfg.DefaultPageLimit),
		handler.NewExerciseHandler(exercises, nil, cfg.DefaultPageLimit),
		handler.NewProgramHandler(programs),
		cfg.JWTSecret, nil)

	return &testServer{e: e, users: users, groups: groups, muscles: muscles, exercises: exercises, programs: programs}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

// token mints an access token directly; per design, authorization trusts
// the embedded claims without re-checking the database.
func (ts *testServer) token(t *testing.T, id uint64, email, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, id, email, role, 30)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok.Token
}

func decodeItems[T any](t *testing.T, rec *httptest.ResponseRecorder) []T {
	t.Helper()
	var resp struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode items: %v (%s)", err, rec.Body.String())
	}
	return resp.Items
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// The API deliberately exposes no delete operation for muscle groups.
func TestNoMuscleGroupDeleteRoute(t *testing.T) {
	ts := newTestServer()
	for _, r := range ts.e.Routes() {
		if r.Method == http.MethodDelete && strings.HasPrefix(r.Path, "/muscles/groups") {
			t.Fatalf("unexpected delete route for muscle groups: %s %s", r.Method, r.Path)
		}
	}
}

func TestMutationsRequireAuthentication(t *testing.T) {
	ts := newTestServer()
	cases := []struct{ method, path string }{
		{http.MethodPost, "/muscles/groups"},
		{http.MethodPost, "/muscles"},
		{http.MethodDelete, "/muscles/1"},
		{http.MethodPost, "/exercises"},
		{http.MethodDelete, "/exercises/1"},
	}
	for _, tc := range cases {
		if rec := ts.do(t, tc.method, tc.path, "", nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
		if rec := ts.do(t, tc.method, tc.path, "garbage.token.here", nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s with bad token: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestScopedMutationsForbiddenForBasic(t *testing.T) {
	ts := newTestServer()
	basic := ts.token(t, 7, "basic@example.com", "basic")
	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/muscles/groups", map[string]string{"name": "Chest", "image": "x.png"}},
		{http.MethodPost, "/muscles", map[string]any{"name": "Pec", "description": "d", "group_id": 1}},
		{http.MethodDelete, "/muscles/1", nil},
	}
	for _, tc := range cases {
		if rec := ts.do(t, tc.method, tc.path, basic, tc.body); rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s as basic: expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}
}
