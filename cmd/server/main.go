package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/clinova/billing-service/internal/application/billing"
	"github.com/clinova/billing-service/internal/infrastructure/cache"
	"github.com/clinova/billing-service/internal/infrastructure/config"
	"github.com/clinova/billing-service/internal/infrastructure/event"
	"github.com/clinova/billing-service/internal/infrastructure/logger"
	"github.com/clinova/billing-service/internal/infrastructure/persistence"
	"github.com/clinova/billing-service/internal/interfaces/http/handler"
	"github.com/clinova/billing-service/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting billing service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Cache and event broker are best-effort collaborators: both are
	// constructed here and injected, never reached through globals.
	var store cache.Store = cache.Disabled{}
	if cfg.Redis.Enabled {
		redisStore := cache.NewRedisStore(&cfg.Redis, log)
		defer func() {
			_ = redisStore.Close()
		}()
		store = redisStore
	}

	var publisher event.Publisher = event.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := event.NewKafkaPublisher(cfg.Kafka, cfg.App.Name, log)
		defer func() {
			_ = kafkaPublisher.Close()
		}()
		publisher = kafkaPublisher
	}

	// Repositories
	claimRepo := persistence.NewGormClaimRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	eligibilityRepo := persistence.NewGormEligibilityRepository(db.DB)

	// Application services
	claimService := billingapp.NewClaimService(claimRepo, publisher, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, publisher, log)
	eligibilityService := billingapp.NewEligibilityService(eligibilityRepo, store, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(cfg.App.Name, db)).
		Register(handler.NewClaimHandler(claimService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewEligibilityHandler(eligibilityService)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
