package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuskit/campus-backend/api/middleware"
	"github.com/campuskit/campus-backend/api/routes"
	"github.com/campuskit/campus-backend/internal/admins"
	"github.com/campuskit/campus-backend/internal/auth"
	"github.com/campuskit/campus-backend/internal/teachers"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/db"
	"github.com/campuskit/campus-backend/pkg/logger"
	"github.com/campuskit/campus-backend/pkg/metrics"
	"github.com/campuskit/campus-backend/pkg/migrate"
	"github.com/campuskit/campus-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var rateLimiter middleware.RateLimiterStore
	var redisPinger redis.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		rateLimiter = redisClient
		redisPinger = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	teachersService, err := teachers.NewService(teachers.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create teachers service", err)
		os.Exit(1)
	}

	adminsService, err := admins.NewService(admins.ServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admins service", err)
		os.Exit(1)
	}

	if err := admins.EnsureSuperAdmin(context.Background(), dbClient, cfg.Bootstrap, cfg.Password, logg); err != nil {
		logg.Error(context.Background(), "failed to bootstrap super admin", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DBPinger:        dbClient,
			RedisPinger:     redisPinger,
			RateLimiter:     rateLimiter,
			HTTPMetrics:     httpMetrics,
			MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			AuthService:     authService,
			TeachersService: teachersService,
			AdminsService:   adminsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
