package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campus-backend/internal/admins"
	"github.com/campuskit/campus-backend/internal/auth"
	"github.com/campuskit/campus-backend/internal/teachers"
	"github.com/campuskit/campus-backend/internal/users"
	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/campuskit/campus-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Signup(ctx context.Context, req auth.SignupRequest) (*auth.SignupResponse, error) {
	return &auth.SignupResponse{Message: "Account created successfully"}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{Token: "signed-token"}, nil
}

type stubTeachersService struct{}

func (stubTeachersService) ListPending(ctx context.Context) ([]teachers.PendingTeacherDTO, error) {
	return []teachers.PendingTeacherDTO{}, nil
}

func (stubTeachersService) Approve(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	return "Teacher approved successfully", nil
}

func (stubTeachersService) Reject(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	return "Teacher rejected and removed", nil
}

type stubAdminsService struct{}

func (stubAdminsService) CreateAdmin(ctx context.Context, req admins.CreateAdminRequest, actor pkgAuth.Actor) (*admins.CreateAdminResponse, error) {
	return &admins.CreateAdminResponse{Message: "ADMIN created successfully"}, nil
}

func (stubAdminsService) ListAdmins(ctx context.Context) ([]users.UserDTO, error) {
	return []users.UserDTO{}, nil
}

func (stubAdminsService) DeleteAdmin(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	return "Admin deleted successfully", nil
}

func (stubAdminsService) ListDeleted(ctx context.Context) ([]admins.DeletedAdminDTO, error) {
	return []admins.DeletedAdminDTO{}, nil
}

func (stubAdminsService) RestoreAdmin(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	return "Admin restored successfully", nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-with-enough-entropy",
			Issuer:            "campus-backend-test",
			ExpirationMinutes: 60,
		},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "campus-backend-test", Output: io.Discard})
	return NewRouter(Deps{
		Config:          testConfig(),
		Logger:          logg,
		DBPinger:        stubPinger{},
		AuthService:     stubAuthService{},
		TeachersService: stubTeachersService{},
		AdminsService:   stubAdminsService{},
	})
}

func bearerFor(t *testing.T, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}
	return "Bearer " + token
}

func TestPublicRoutes(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/v1/auth/signup", `{"full_name":"A","email":"a@example.com","phone":"5550001111","password":"correct horse","role":"STUDENT"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/auth/login", `{"email":"a@example.com","password":"correct horse"}`, http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s %s: expected %d got %d: %s", tc.method, tc.path, tc.want, resp.Code, resp.Body.String())
		}
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/list-admins", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminRoutesRejectNonAdminRoles(t *testing.T) {
	router := testRouter(t)

	for _, role := range []enums.Role{enums.RoleStudent, enums.RoleTeacher} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/list-admins", nil)
		req.Header.Set("Authorization", bearerFor(t, role))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403 got %d", role, resp.Code)
		}
	}
}

func TestAdminRoutesAllowAdmins(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/teachers/pending"},
		{http.MethodPost, "/api/v1/admin/teachers/" + uuid.NewString() + "/approve"},
		{http.MethodDelete, "/api/v1/admin/teachers/" + uuid.NewString() + "/reject"},
		{http.MethodGet, "/api/v1/admin/list-admins"},
		{http.MethodDelete, "/api/v1/admin/delete-admin/" + uuid.NewString()},
	}

	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", bearerFor(t, enums.RoleAdmin))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200 got %d: %s", tc.method, tc.path, resp.Code, resp.Body.String())
		}
	}
}

func TestSuperAdminOnlyRoutes(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/deleted-admins"},
		{http.MethodPost, "/api/v1/admin/restore-admin/" + uuid.NewString()},
	}

	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", bearerFor(t, enums.RoleAdmin))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s %s as ADMIN: expected 403 got %d", tc.method, tc.path, resp.Code)
		}

		req = httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", bearerFor(t, enums.RoleSuperAdmin))
		resp = httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s %s as SUPER_ADMIN: expected 200 got %d: %s", tc.method, tc.path, resp.Code, resp.Body.String())
		}
	}
}

func TestAdminCreateViaRouter(t *testing.T) {
	router := testRouter(t)

	body := `{"full_name":"New Admin","email":"admin@example.com","phone":"5550009999","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-admin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, enums.RoleSuperAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}
