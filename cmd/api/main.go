package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/doevida/doevida-backend/api/controllers"
	"github.com/doevida/doevida-backend/api/routes"
	"github.com/doevida/doevida-backend/internal/auth"
	"github.com/doevida/doevida-backend/internal/campaigns"
	"github.com/doevida/doevida-backend/internal/mailer"
	"github.com/doevida/doevida-backend/internal/participations"
	"github.com/doevida/doevida-backend/internal/users"
	"github.com/doevida/doevida-backend/pkg/auth/session"
	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/db"
	"github.com/doevida/doevida-backend/pkg/logger"
	"github.com/doevida/doevida-backend/pkg/metrics"
	"github.com/doevida/doevida-backend/pkg/migrate"
	"github.com/doevida/doevida-backend/pkg/pubsub"
	"github.com/doevida/doevida-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	healthChecks := []controllers.DependencyCheck{
		{Name: "db", Ping: dbClient.Ping},
		{Name: "redis", Ping: redisClient.Ping},
	}

	var joinPublisher participations.Publisher
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer pubsubClient.Close()
		joinPublisher = pubsubClient.ParticipationPublisher()
		healthChecks = append(healthChecks, controllers.DependencyCheck{Name: "pubsub", Ping: pubsubClient.Ping})
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	usersRepo := users.NewRepository(dbClient.DB())
	campaignsRepo := campaigns.NewRepository(dbClient.DB())
	participationsRepo := participations.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	requireResource(ctx, logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	requireResource(ctx, logg, "register service", err)

	recoverService, err := auth.NewRecoverService(auth.RecoverServiceParams{
		UserRepo:       usersRepo,
		TokenStore:     redisClient,
		Mailer:         mailer.New(cfg.Mail, logg),
		PasswordConfig: cfg.Password,
		AppBaseURL:     cfg.App.BaseURL,
		Logger:         logg,
	})
	requireResource(ctx, logg, "recover service", err)

	usersService, err := users.NewService(usersRepo)
	requireResource(ctx, logg, "users service", err)

	campaignsService, err := campaigns.NewService(campaignsRepo)
	requireResource(ctx, logg, "campaigns service", err)

	participationsService, err := participations.NewService(participations.ServiceParams{
		Repo:      participationsRepo,
		Campaigns: campaignsRepo,
		Users:     usersRepo,
		Publisher: joinPublisher,
		Logger:    logg,
	})
	requireResource(ctx, logg, "participations service", err)

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	router := routes.NewRouter(routes.Deps{
		Config:                cfg,
		Logger:                logg,
		Redis:                 redisClient,
		Sessions:              sessionManager,
		AuthService:           authService,
		RegisterService:       registerService,
		RecoverService:        recoverService,
		UsersService:          usersService,
		CampaignsService:      campaignsService,
		ParticipationsService: participationsService,
		HTTPMetrics:           httpMetrics,
		PromRegistry:          promRegistry,
		HealthChecks:          healthChecks,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(runCtx, "api server shut down gracefully")
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
