package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/infra/config"
	"github.com/brightshield/insurance-portal/internal/infra/database"
	kafkainfra "github.com/brightshield/insurance-portal/internal/infra/kafka"
	"github.com/brightshield/insurance-portal/internal/infra/logger"
	redisinfra "github.com/brightshield/insurance-portal/internal/infra/redis"
	"github.com/brightshield/insurance-portal/internal/infra/security"
	"github.com/brightshield/insurance-portal/internal/infra/telemetry"
	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
	postgresrepo "github.com/brightshield/insurance-portal/internal/repository/postgres"
	redisrepo "github.com/brightshield/insurance-portal/internal/repository/redis"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
	"github.com/brightshield/insurance-portal/internal/transport/http/routes"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// Application bundles the portal's HTTP engine and its shutdown hooks.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
	kafka  *kafkainfra.Producer
}

type repositorySet struct {
	users    port.UserRepository
	quotes   port.QuoteRepository
	policies port.PolicyRepository
	claims   port.ClaimRepository
	payments port.PaymentRepository
	content  port.ContentRepository
}

// New wires the configured storage backend, optional Redis and Kafka, the
// services, and the HTTP routes into a runnable application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	provider, err := telemetry.Attach(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	app := &Application{cfg: cfg, logger: log}

	repos, err := app.initRepositories(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var redisClient *redisinfra.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		app.redis = redisClient
	}

	var wizardStore port.WizardStore
	var rateLimitStore port.RateLimitStore
	if redisClient != nil {
		wizardStore = redisrepo.NewWizardStore(redisClient.Client(), cfg.Redis.WizardKeyPrefix)
		rateLimitStore = redisrepo.NewRateLimitStore(redisClient.Client(), "portal:rate-limit")
	} else {
		log.Info("redis not configured, wizard sessions held in memory and rate limiting disabled")
		wizardStore = memoryrepo.NewWizardStore()
	}

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			app.kafka = producer
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	tokens, err := security.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}
	passwordValidator := security.DefaultPasswordValidator()

	authService := usecase.NewAuthService(repos.users, tokens, passwordValidator, eventPublisher, log)
	quoteService := usecase.NewQuoteService(repos.quotes, eventPublisher, log).
		WithPremiumCounter(provider.QuotesComputed())
	policyService := usecase.NewPolicyService(repos.policies, repos.quotes, eventPublisher, log)
	claimService := usecase.NewClaimService(repos.claims, repos.policies, eventPublisher, log)
	paymentService := usecase.NewPaymentService(repos.payments, repos.policies, eventPublisher, log)
	wizardService := usecase.NewWizardService(wizardStore, quoteService, cfg.Wizard.SessionTTL, log)
	contentService := usecase.NewContentService(repos.content, log)

	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{
		Namespace: cfg.Telemetry.MetricsNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	deps := routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		Metrics:     metrics,
		RateLimiter: rateLimiter,
		Services: routes.ServiceSet{
			Auth:     authService,
			Quotes:   quoteService,
			Policies: policyService,
			Claims:   claimService,
			Payments: paymentService,
			Wizard:   wizardService,
			Content:  contentService,
		},
	}
	if app.pool != nil {
		deps.Database = app.pool
	}
	if redisClient != nil {
		deps.Cache = redisClient
	}

	app.engine = routes.Register(deps)

	return app, nil
}

// initRepositories builds the repository set for the configured backend. The
// memory backend seeds demo data and simulates request latency; postgres uses
// the pgx pool.
func (a *Application) initRepositories(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*repositorySet, error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		var opts []memoryrepo.Option
		if cfg.Mock.Latency > 0 {
			opts = append(opts, memoryrepo.WithLatency(cfg.Mock.Latency))
		}
		store := memoryrepo.NewStore(opts...)

		if cfg.Mock.Seed {
			if err := store.Seed(time.Now().UTC(), security.HashPassword); err != nil {
				return nil, fmt.Errorf("seed memory store: %w", err)
			}
			log.Info("memory store seeded with demo data")
		}

		return &repositorySet{
			users:    store.Users(),
			quotes:   store.Quotes(),
			policies: store.Policies(),
			claims:   store.Claims(),
			payments: store.Payments(),
			content:  store.Content(),
		}, nil

	case "postgres":
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		a.pool = pool

		repos := postgresrepo.NewRepositories(pool)
		// Marketing content stays in memory even with postgres persistence;
		// it is seeded fixture data, not customer state.
		contentStore := memoryrepo.NewStore()
		if err := contentStore.Seed(time.Now().UTC(), security.HashPassword); err != nil {
			return nil, fmt.Errorf("seed content store: %w", err)
		}

		return &repositorySet{
			users:    repos.Users,
			quotes:   repos.Quotes,
			policies: repos.Policies,
			claims:   repos.Claims,
			payments: repos.Payments,
			content:  contentStore.Content(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.kafka != nil {
			_ = a.kafka.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting insurance portal API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
		zap.String("storage", a.cfg.Storage.Backend),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
