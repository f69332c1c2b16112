package router

import (
	"net/http"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/infrastructure/logger"
	"github.com/finapp2p/backend/internal/interfaces/http/dto"
	"github.com/finapp2p/backend/internal/interfaces/http/handler"
	"github.com/finapp2p/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers served by the engine
type Handlers struct {
	Person   *handler.PersonHandler
	Registry *handler.RegistryHandler
	System   *handler.SystemHandler
}

// EngineConfig configures NewEngine
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Swagger config.SwaggerConfig
	Tracing middleware.TracingConfig
	Meter   metric.Meter // nil disables HTTP metrics
	Logger  *zap.Logger
}

// NewEngine builds the gin engine with the middleware stack and every route.
//
// Middleware order:
//  1. RequestID, so every later layer sees the id
//  2. Recovery
//  3. Tracing and span attributes
//  4. Access log with the request-scoped logger
//  5. Security headers, CORS and the body limit
//  6. HTTP metrics
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(cfg.Meter, log))

	engine.GET("/health", h.System.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	persons := NewDomainGroup("persons", "/persons")
	persons.GET("", h.Person.List).
		POST("", h.Person.Create).
		GET("/:id", h.Person.Get).
		PUT("/:id", h.Person.Update).
		DELETE("/:id", h.Person.Delete)

	registry := NewDomainGroup("registry", "/registry")
	registry.GET("/companies/:cnpj", h.Registry.LookupCompany)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	NewRouter(engine).
		Register(persons).
		Register(registry).
		Register(system).
		Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	return engine
}
