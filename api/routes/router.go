package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuskit/campus-backend/api/controllers"
	"github.com/campuskit/campus-backend/api/middleware"
	"github.com/campuskit/campus-backend/internal/admins"
	"github.com/campuskit/campus-backend/internal/auth"
	"github.com/campuskit/campus-backend/internal/teachers"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/campuskit/campus-backend/pkg/logger"
	"github.com/campuskit/campus-backend/pkg/metrics"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        controllers.Pinger
	RedisPinger     controllers.Pinger
	RateLimiter     middleware.RateLimiterStore
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	AuthService     auth.Service
	TeachersService teachers.Service
	AdminsService   admins.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, deps.RateLimiter, logg)).
			Post("/signup", controllers.AuthSignup(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAnyRole(logg, enums.RoleAdmin, enums.RoleSuperAdmin))

		r.Get("/teachers/pending", controllers.TeachersPending(deps.TeachersService, logg))
		r.Post("/teachers/{id}/approve", controllers.TeacherApprove(deps.TeachersService, logg))
		r.Delete("/teachers/{id}/reject", controllers.TeacherReject(deps.TeachersService, logg))

		r.Post("/create-admin", controllers.AdminCreate(deps.AdminsService, logg))
		r.Get("/list-admins", controllers.AdminList(deps.AdminsService, logg))
		r.Delete("/delete-admin/{id}", controllers.AdminDelete(deps.AdminsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleSuperAdmin))
			r.Get("/deleted-admins", controllers.AdminListDeleted(deps.AdminsService, logg))
			r.Post("/restore-admin/{id}", controllers.AdminRestore(deps.AdminsService, logg))
		})
	})

	return r
}
