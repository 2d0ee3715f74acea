package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doevida/doevida-backend/api/controllers"
	"github.com/doevida/doevida-backend/api/middleware"
	"github.com/doevida/doevida-backend/internal/auth"
	"github.com/doevida/doevida-backend/internal/campaigns"
	"github.com/doevida/doevida-backend/internal/participations"
	"github.com/doevida/doevida-backend/internal/users"
	"github.com/doevida/doevida-backend/pkg/auth/session"
	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/enums"
	"github.com/doevida/doevida-backend/pkg/logger"
	"github.com/doevida/doevida-backend/pkg/metrics"
	"github.com/doevida/doevida-backend/pkg/redis"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker

	AuthService           auth.Service
	RegisterService       auth.RegisterService
	RecoverService        auth.RecoverService
	UsersService          users.Service
	CampaignsService      campaigns.Service
	ParticipationsService participations.Service

	HTTPMetrics  *metrics.HTTPMetrics
	PromRegistry *prometheus.Registry

	HealthChecks []controllers.DependencyCheck
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	recoverPolicy := middleware.NewAuthRateLimitPolicy(
		"recover",
		cfg.AuthRateLimit.RecoverWindow,
		cfg.AuthRateLimit.RecoverIPLimit,
		cfg.AuthRateLimit.RecoverEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthChecks...))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(recoverPolicy, deps.Redis, logg)).Post("/recover", controllers.Recover(deps.RecoverService, logg))
		r.Post("/reset-password", controllers.ResetPassword(deps.RecoverService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))
	})

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Get("/", controllers.CampaignList(deps.CampaignsService, logg))
		r.Get("/{campaignID}", controllers.CampaignGet(deps.CampaignsService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Get("/api/v1/auth/me", controllers.Me())
		r.Post("/api/v1/auth/logout", controllers.Logout(deps.AuthService, logg))
		r.Get("/api/v1/profile", controllers.Profile(deps.UsersService, logg))

		r.Post("/api/v1/campaigns/{campaignID}/participate", controllers.ParticipationJoin(deps.ParticipationsService, logg))
		r.Get("/api/v1/participations/mine", controllers.ParticipationMine(deps.ParticipationsService, logg))
	})

	r.Route("/api/admin/v1/campaigns", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Post("/", controllers.AdminCampaignCreate(deps.CampaignsService, logg))
		r.Patch("/{campaignID}", controllers.AdminCampaignUpdate(deps.CampaignsService, logg))
		r.Delete("/{campaignID}", controllers.AdminCampaignDelete(deps.CampaignsService, logg))
	})

	return r
}
