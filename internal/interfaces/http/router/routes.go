package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shcya/backend/internal/infrastructure/auth"
	"github.com/shcya/backend/internal/infrastructure/config"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"github.com/shcya/backend/internal/interfaces/http/dto"
	"github.com/shcya/backend/internal/interfaces/http/handler"
	"github.com/shcya/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// defaultMaxBodySize applies to JSON routes when HTTP.MaxBodySize is unset
const defaultMaxBodySize int64 = 1 << 20

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	System     *handler.SystemHandler
	Compliance *handler.ComplianceHandler
	Inquiry    *handler.InquiryHandler
	DSC        *handler.DSCHandler
	Careers    *handler.CareersHandler
	Document   *handler.DocumentHandler
}

// EngineConfig carries what the middleware chain needs
type EngineConfig struct {
	HTTP           config.HTTPConfig
	ServiceName    string
	TracingEnabled bool
	MeterProvider  *telemetry.MeterProvider
	JWT            *auth.JWTService
	Logger         *zap.Logger
	// RateLimiter is applied to /api routes; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

// NewEngine builds the gin engine with the global middleware chain, the
// health probe and every API route.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	tracing := middleware.DefaultTracingConfig()
	tracing.Enabled = cfg.TracingEnabled
	if cfg.ServiceName != "" {
		tracing.ServiceName = cfg.ServiceName
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(tracing),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: cfg.MeterProvider,
			Enabled:       cfg.MeterProvider != nil,
		}),
		logger.GinMiddleware(log, "/health"),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.GET("/health", h.System.Health)

	var opts []RouterOption
	if cfg.RateLimiter != nil {
		opts = append(opts, WithMiddleware(middleware.RateLimit(cfg.RateLimiter)))
	}
	r := NewRouter(engine, opts...).Register(domainGroups(cfg, h, log)...)
	r.Setup()
	for _, route := range r.Routes() {
		log.Debug("Route mounted",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	return engine
}

// domainGroups lays out the API. JSON routes share the configured body
// limit; upload routes get the document limit instead, because nested
// limits only ever shrink.
func domainGroups(cfg EngineConfig, h Handlers, log *zap.Logger) []*DomainGroup {
	maxBody := cfg.HTTP.MaxBodySize
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}
	jsonLimit := middleware.BodyLimit(maxBody)
	uploadLimit := middleware.BodyLimit(h.Document.BodyLimit())

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	compliance := NewDomainGroup("compliance", "/compliance").
		Use(jsonLimit).
		POST("/rule86b/evaluate", h.Compliance.EvaluateRule86B)

	forms := NewDomainGroup("forms", "").Use(jsonLimit)
	forms.POST("/inquiries", h.Inquiry.Submit)
	forms.POST("/dsc-applications", h.DSC.Submit)
	forms.POST("/careers/applications", h.Careers.Submit)

	uploads := NewDomainGroup("uploads", "").
		Use(uploadLimit).
		POST("/dsc-applications/documents", h.Document.UploadDSCDocument).
		POST("/careers/documents", h.Document.UploadResume)

	admin := NewDomainGroup("admin", "/admin").Use(
		middleware.JWTAuthMiddleware(cfg.JWT, log),
		middleware.TracingAttributeInjector(),
		jsonLimit,
	)
	admin.Group("inquiries", "/inquiries").
		GET("", h.Inquiry.List).
		GET("/:id", h.Inquiry.GetByID).
		PUT("/:id/status", h.Inquiry.UpdateStatus)
	admin.Group("dsc-applications", "/dsc-applications").
		GET("", h.DSC.List).
		GET("/:id", h.DSC.GetByID).
		PUT("/:id/status", h.DSC.UpdateStatus).
		PUT("/:id/documents", h.DSC.AttachDocument)
	admin.Group("careers", "/careers/applications").
		GET("", h.Careers.List).
		GET("/:id", h.Careers.GetByID).
		PUT("/:id/status", h.Careers.UpdateStatus)

	return []*DomainGroup{system, compliance, forms, uploads, admin}
}
