package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	careersapp "github.com/shcya/backend/internal/application/careers"
	complianceapp "github.com/shcya/backend/internal/application/compliance"
	documentapp "github.com/shcya/backend/internal/application/document"
	dscapp "github.com/shcya/backend/internal/application/dsc"
	inquiryapp "github.com/shcya/backend/internal/application/inquiry"
	"github.com/shcya/backend/internal/application/notification"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/infrastructure/auth"
	"github.com/shcya/backend/internal/infrastructure/cache"
	"github.com/shcya/backend/internal/infrastructure/config"
	"github.com/shcya/backend/internal/infrastructure/event"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/mail"
	"github.com/shcya/backend/internal/infrastructure/persistence"
	"github.com/shcya/backend/internal/infrastructure/scheduler"
	"github.com/shcya/backend/internal/infrastructure/storage"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"github.com/shcya/backend/internal/interfaces/http/handler"
	"github.com/shcya/backend/internal/interfaces/http/middleware"
	"github.com/shcya/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// OpenAPI docs are generated into ./docs from the annotations below and on the handlers.
//go:generate go run github.com/swaggo/swag/v2/cmd/swag@v2.0.0-rc5 init --dir ../../,../../internal/interfaces/http/handler --generalInfo cmd/server/main.go --output ../../docs --v3.1

//	@title			SHCYA Site Backend API
//	@version		1.0
//	@description	Contact, DSC and careers forms, document uploads, the Rule 86B calculator and the staff back office.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token issued by the firm's identity provider. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log, telemetry.WithServiceVersion(cfg.App.Version))
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log, telemetry.WithMeterServiceVersion(cfg.App.Version))
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = logger.Tee(log, loggerProvider.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))

	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("shcya.business"))
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}

	log.Info("Starting SHCYA backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfigFrom(cfg.Telemetry, db.Driver()), log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if cfg.Database.AutoMigrate || db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	// Storage
	objectStorage, stub := newObjectStorage(ctx, cfg, log)

	// Mail, dedupe guard, event bus
	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	guard := cache.NewSubmissionGuard(ctx, cfg.Redis, log)
	defer func() {
		if err := guard.Close(); err != nil {
			log.Warn("Error closing submission guard", zap.Error(err))
		}
	}()
	gate := submission.NewGate(guard, cfg.Submission.DedupeWindow, businessMetrics)

	bus := event.NewInMemoryEventBus(log)
	notifier := notification.NewStaffNotifier(mailer, cfg.Mail.StaffRecipients, businessMetrics, log)
	bus.Subscribe(notifier, notifier.EventTypes()...)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	inquiryService := inquiryapp.NewService(persistence.NewGormInquiryRepository(db.DB), gate, bus)
	dscService := dscapp.NewService(persistence.NewGormDSCApplicationRepository(db.DB), gate, bus)
	careersService := careersapp.NewService(persistence.NewGormJobApplicationRepository(db.DB), gate, bus)
	complianceService := complianceapp.NewService(businessMetrics)
	documentService := documentapp.NewService(objectStorage, cfg.Storage.MaxUploadSize, log,
		documentapp.WithMetrics(businessMetrics))

	// Scheduler
	sched := scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, log)
	if cfg.Scheduler.Enabled {
		digest := notification.NewDailyDigest(dscService, mailer, cfg.Mail.StaffRecipients, businessMetrics, businessMetrics)
		if err := sched.Register(cfg.Scheduler.DigestSchedule, digest); err != nil {
			log.Fatal("Failed to register digest job", zap.Error(err))
		}
		if err := sched.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
	}

	engine := router.NewEngine(router.EngineConfig{
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		MeterProvider:  meterProvider,
		JWT:            auth.NewJWTService(cfg.JWT),
		Logger:         log,
		RateLimiter:    rateLimiter,
	}, router.Handlers{
		System: handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, map[string]handler.HealthChecker{
			"database": db,
		}),
		Compliance: handler.NewComplianceHandler(complianceService),
		Inquiry:    handler.NewInquiryHandler(inquiryService),
		DSC:        handler.NewDSCHandler(dscService),
		Careers:    handler.NewCareersHandler(careersService),
		Document:   handler.NewDocumentHandler(documentService),
	})
	if stub != nil {
		engine.GET("/files/*key", serveStubObject(stub))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	// Pending staff notifications are flushed before the process exits.
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	shutdownTelemetry(shutdownCtx, log, tracerProvider, meterProvider, loggerProvider)

	log.Info("Server exited gracefully")
}

// newObjectStorage returns the S3 store, or the in-memory stub for local
// development. The stub is also returned so its objects can be served.
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (documentapp.ObjectStorage, *storage.StubObjectStorage) {
	if !strings.EqualFold(cfg.Storage.Provider, "s3") {
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.App.Port + "/files"
		}
		log.Warn("Using in-memory document storage; uploads are lost on restart", zap.String("base_url", baseURL))
		stub := storage.NewStubObjectStorage(baseURL)
		return stub, stub
	}

	s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if cfg.Storage.EnsureBucket {
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.String("bucket", s3Store.Bucket()), zap.Error(err))
		}
	}
	log.Info("Object storage ready", zap.String("bucket", s3Store.Bucket()))
	return s3Store, nil
}

// serveStubObject serves uploads held by the in-memory store
func serveStubObject(stub *storage.StubObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := stub.Object(strings.TrimPrefix(c.Param("key"), "/"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, obj.ContentType, obj.Data)
	}
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(ctx context.Context, log *zap.Logger, providers ...shutdowner) {
	for _, p := range providers {
		if err := p.Shutdown(ctx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
}
