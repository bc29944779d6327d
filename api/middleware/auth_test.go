package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-with-enough-entropy",
		Issuer:            "campus-backend-test",
		ExpirationMinutes: 60,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	var gotActor pkgAuth.Actor
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, ok = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Auth(cfg, nil)(next)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, userID, enums.RoleAdmin))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", resp.Code, resp.Body.String())
	}
	if !ok {
		t.Fatal("actor missing from context")
	}
	if gotActor.ID != userID || gotActor.Role != enums.RoleAdmin {
		t.Fatalf("unexpected actor %+v", gotActor)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	cfg := testJWTConfig()
	forged := config.JWTConfig{
		Secret:            "a-different-secret-entirely",
		Issuer:            cfg.Issuer,
		ExpirationMinutes: 60,
	}

	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, forged, uuid.New(), enums.RoleAdmin))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAnyRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAnyRole(nil, enums.RoleAdmin, enums.RoleSuperAdmin)(next)

	cases := []struct {
		role string
		want int
	}{
		{enums.RoleAdmin.String(), http.StatusNoContent},
		{enums.RoleSuperAdmin.String(), http.StatusNoContent},
		{enums.RoleStudent.String(), http.StatusForbidden},
		{enums.RoleTeacher.String(), http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.role != "" {
			req = req.WithContext(WithRole(req.Context(), tc.role))
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("role %q: expected %d got %d", tc.role, tc.want, resp.Code)
		}
	}
}
