package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ems/internal/backend"
	"ems/internal/domain/audit"
	"ems/internal/domain/auth"
	"ems/internal/domain/dashboard"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
	"ems/internal/domain/salary"
	"ems/internal/platform/cache"
	"ems/internal/platform/config"
	"ems/internal/platform/db"
	"ems/internal/platform/jobs"
	"ems/internal/platform/messaging"
	"ems/internal/platform/metrics"
	"ems/internal/platform/money"
	"ems/internal/platform/policy"
	audithandler "ems/internal/transport/http/handlers/audit"
	authhandler "ems/internal/transport/http/handlers/auth"
	dashboardhandler "ems/internal/transport/http/handlers/dashboard"
	employeeshandler "ems/internal/transport/http/handlers/employees"
	leavehandler "ems/internal/transport/http/handlers/leave"
	payrollhandler "ems/internal/transport/http/handlers/payroll"
	performancehandler "ems/internal/transport/http/handlers/performance"
	salaryhandler "ems/internal/transport/http/handlers/salary"
	systemhandler "ems/internal/transport/http/handlers/system"
	"ems/internal/transport/http/middleware"
)

const currency = "INR"

type App struct {
	Config config.Config
	Logger *zap.Logger
	Router http.Handler

	jobs    *jobs.Service
	closers []func()
}

// stores holds one persistence driver per domain.
type stores struct {
	employees employee.StoreAPI
	salary    salary.StoreAPI
	payroll   payroll.StoreAPI
	leave     leave.StoreAPI
	reviews   performance.StoreAPI
}

// New connects the configured infrastructure and builds the router. Close
// releases whatever was opened, also after a failed New.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	decimal.MarshalJSONWithoutQuotes = true

	app := &App{Config: cfg, Logger: logger}
	var checks []systemhandler.Check

	st, pool, err := app.openStores(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	if pool != nil {
		checks = append(checks, systemhandler.Check{Name: "postgres", Ping: pool.Ping})
	}

	// A nil *redis.Client must not reach the services as a non-nil interface.
	var rdb redis.Cmdable
	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, 3, logger.Named("cache"))
	if err != nil {
		app.Close()
		return nil, err
	}
	if client != nil {
		rdb = client
		app.closers = append(app.closers, func() { _ = client.Close() })
		checks = append(checks, systemhandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}

	collector := metrics.New()
	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("publishing events to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	publisher = collector.Publisher(publisher)
	var trail *audit.Trail
	if pool != nil {
		trail = audit.NewTrail(audit.NewStore(pool), publisher, logger)
		publisher = trail
	}
	app.closers = append(app.closers, func() { _ = publisher.Close() })

	pol, err := policy.Load(cfg.PolicyFile)
	if err != nil {
		app.Close()
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
	}

	employees := employee.NewService(st.employees, rdb, cfg.EmployeeCacheTTL, logger)
	salaries := salary.NewService(st.salary, employees, pol.Salary, logger)
	payslips := payroll.NewService(st.payroll, employees, salaries, publisher, money.NewFormatter(cfg.Locale, currency), logger)
	leaves := leave.NewService(st.leave, employees, publisher, pol.Leave, logger)
	reviews := performance.NewService(st.reviews, employees, publisher, logger)
	overview := dashboard.NewService(employees, leaves, reviews, payslips, logger)
	authSvc := auth.NewService(employees, secret, cfg.TokenTTL, logger)
	app.jobs = jobs.New(payslips, cfg.PayrollSchedule, logger)

	if cfg.SeedAdminEmail != "" {
		created, err := employees.EnsureAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		if created {
			logger.Info("seeded admin account", zap.String("email", cfg.SeedAdminEmail))
		}
	}

	var exposed *metrics.Collector
	if cfg.MetricsEnabled {
		exposed = collector
	}
	system := systemhandler.NewHandler(checks, exposed, app.jobs, logger)
	authH := authhandler.NewHandler(authSvc, logger)

	loginLimit := middleware.NewRateLimiter(sensitiveLimit(cfg.RateLimitPerMinute), middleware.ClientIPKey).Handler
	decisionLimit := middleware.NewRateLimiter(sensitiveLimit(cfg.RateLimitPerMinute), middleware.ActorOrIPKey).Handler

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger.Named("http"), collector))
	router.Use(middleware.Recover(logger))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(secret))

	system.RegisterProbes(router)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
		r.With(loginLimit).Post("/auth/login", authH.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Idempotency(rdb, cfg.IdempotencyTTL, logger))

			r.Get("/auth/me", authH.HandleMe)
			employeeshandler.NewHandler(employees, logger).RegisterRoutes(r)
			salaryhandler.NewHandler(salaries, logger).RegisterRoutes(r)
			payrollhandler.NewHandler(payslips, logger).RegisterRoutes(r, decisionLimit)
			leavehandler.NewHandler(leaves, logger).RegisterRoutes(r, decisionLimit)
			performancehandler.NewHandler(reviews, logger).RegisterRoutes(r)
			dashboardhandler.NewHandler(overview, logger).RegisterRoutes(r)
			system.RegisterRoutes(r)
			if trail != nil {
				audithandler.NewHandler(trail, logger).RegisterRoutes(r)
			}
		})
	})

	app.Router = router
	return app, nil
}

func (a *App) openStores(ctx context.Context) (stores, *pgxpool.Pool, error) {
	cfg := a.Config
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, nil, err
		}
		a.closers = append(a.closers, pool.Close)
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir, a.Logger); err != nil {
				return stores{}, nil, err
			}
		}
		a.Logger.Info("using postgres store")
		return stores{
			employees: employee.NewStore(pool),
			salary:    salary.NewStore(pool),
			payroll:   payroll.NewStore(pool),
			leave:     leave.NewStore(pool),
			reviews:   performance.NewStore(pool),
		}, pool, nil
	default:
		client := backend.New(cfg.BackendURL, cfg.BackendTimeout, a.Logger)
		a.Logger.Info("using backend store", zap.String("url", cfg.BackendURL))
		return stores{
			employees: client,
			salary:    client,
			payroll:   client,
			leave:     client,
			reviews:   client,
		}, nil, nil
	}
}

// Start runs background work until ctx is done.
func (a *App) Start(ctx context.Context) error {
	return a.jobs.Start(ctx)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func sensitiveLimit(perMinute int) int {
	if limit := perMinute / 4; limit > 0 {
		return limit
	}
	return 1
}
