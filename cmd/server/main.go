package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	personapp "github.com/finapp2p/backend/internal/application/person"
	"github.com/finapp2p/backend/internal/infrastructure/cache"
	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/infrastructure/logger"
	"github.com/finapp2p/backend/internal/infrastructure/persistence"
	"github.com/finapp2p/backend/internal/infrastructure/registry"
	"github.com/finapp2p/backend/internal/infrastructure/telemetry"
	"github.com/finapp2p/backend/internal/interfaces/http/handler"
	"github.com/finapp2p/backend/internal/interfaces/http/middleware"
	"github.com/finapp2p/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/finapp2p/backend/docs"
)

//	@title			FINAPP2P Backend API
//	@version		1.0
//	@description	Business contact registry: individuals (CPF) and companies (CNPJ), with company lookup in the public CNPJ registry.

//	@contact.name	API Support
//	@contact.url	https://github.com/finapp2p/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:3000
//	@BasePath	/

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Telemetry first, so the logger can tee into the OTLP log pipeline
	bootLog, err := logger.New(logger.FromConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	log, err := logger.New(logger.FromConfig(cfg.Log), providers.ZapCore())
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	log.Info("Starting FINAPP2P backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithIgnoreRecordNotFoundError(true),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	meter := providers.Meter(telemetry.TracerName)
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, db.Driver(), providers.TracerProvider(), log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if cfg.Telemetry.MetricsEnabled {
		dbMetrics, err := telemetry.NewDBMetrics(meter, cfg.Telemetry.DBSlowQueryThresh, log)
		if err == nil {
			err = db.DB.Use(dbMetrics)
		}
		if err != nil {
			log.Warn("Database metrics disabled", zap.Error(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			if reg, err := telemetry.ObservePool(meter, sqlDB); err != nil {
				log.Warn("Connection pool metrics disabled", zap.Error(err))
			} else {
				defer func() { _ = reg.Unregister() }()
			}
		}
	}

	var repoOpts []telemetry.RepositoryOption
	if cfg.Telemetry.MetricsEnabled {
		if m, err := telemetry.NewRepositoryMetrics(meter); err != nil {
			log.Warn("Repository metrics disabled", zap.Error(err))
		} else {
			repoOpts = append(repoOpts, telemetry.WithRepositoryMetrics(m))
		}
	}
	repo := telemetry.InstrumentRepository(persistence.NewGormPersonRepository(db.DB), db.Driver(), repoOpts...)

	if cfg.App.SeedDemo {
		seeded, err := personapp.NewDemoSeeder(repo, log).EnsureDemoData(context.Background())
		if err != nil {
			log.Error("Failed to seed demo data", zap.Error(err))
		} else if seeded {
			log.Info("Demo data seeded")
		}
	}

	// Registry lookups are cached in Redis when it is reachable
	var lookupCache cache.Store
	if cfg.Registry.CacheEnabled {
		lookupCache, err = cache.NewStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithKeyPrefix("finapp2p:registry:"),
		).CreateStore(context.Background())
		if err != nil {
			log.Warn("Registry cache disabled", zap.Error(err))
		} else {
			defer func() { _ = lookupCache.Close() }()
		}
	}
	lookup := registry.NewLookup(cfg.Registry, lookupCache, log)

	personService := personapp.NewPersonService(repo, lookup, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewEngine(router.EngineConfig{
		HTTP:    cfg.HTTP,
		Swagger: cfg.Swagger,
		Tracing: middleware.TracingConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			Enabled:        providers.TracingEnabled(),
			TracerProvider: providers.TracerProvider(),
		},
		Meter:  meter,
		Logger: log,
	}, router.Handlers{
		Person:   handler.NewPersonHandler(personService),
		Registry: handler.NewRegistryHandler(personService),
		System:   handler.NewSystemHandler(cfg.App.Name, db),
	})

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Error("Failed to flush telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
