package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/infra/config"
	"github.com/brightshield/insurance-portal/internal/transport/http/handlers"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth     *usecase.AuthService
	Quotes   *usecase.QuoteService
	Policies *usecase.PolicyService
	Claims   *usecase.ClaimService
	Payments *usecase.PaymentService
	Wizard   *usecase.WizardService
	Content  *usecase.ContentService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Metrics     *middleware.HTTPMetrics
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS([]string{"*"}))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Services.Auth)
	staffOnly := middleware.RequireRole(domain.RoleAgent, domain.RoleAdmin)

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)
	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		var registerLimit, loginLimit gin.HandlerFunc
		if deps.RateLimiter != nil {
			rl := deps.Config.RateLimit
			registerLimit = deps.RateLimiter.RateLimit(middleware.RateLimitRule{
				Name:       "register",
				Limit:      rl.RegisterMaxAttempts,
				Window:     rl.WindowDuration,
				Identifier: middleware.ClientIPIdentifier(),
			})
			loginLimit = deps.RateLimiter.RateLimit(middleware.RateLimitRule{
				Name:       "login",
				Limit:      rl.LoginMaxAttempts,
				Window:     rl.WindowDuration,
				Identifier: middleware.ClientIPIdentifier(),
			})
		}

		authGroup := api.Group("/auth")
		handlers.NewAuthHandler(deps.Services.Auth).RegisterRoutes(authGroup, authMiddleware, registerLimit, loginLimit)

		public := api.Group("")
		handlers.NewContentHandler(deps.Services.Content).RegisterRoutes(public)

		wizardGroup := api.Group("")
		wizardGroup.Use(optionalAuth)
		handlers.NewWizardHandler(deps.Services.Wizard).RegisterRoutes(wizardGroup)

		authed := api.Group("")
		authed.Use(authMiddleware)

		handlers.NewQuoteHandler(deps.Services.Quotes).RegisterRoutes(public, authed)
		handlers.NewPolicyHandler(deps.Services.Policies).RegisterRoutes(authed)
		handlers.NewClaimHandler(deps.Services.Claims).RegisterRoutes(authed, staffOnly)
		handlers.NewPaymentHandler(deps.Services.Payments).RegisterRoutes(authed)
		handlers.NewDashboardHandler(
			deps.Services.Quotes,
			deps.Services.Policies,
			deps.Services.Claims,
			deps.Services.Payments,
			deps.Logger,
		).RegisterRoutes(authed)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.NewErrorResponse(c, "resource not found"))
	})

	return r
}
