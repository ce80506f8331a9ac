package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/config"
	"cinemarathi_backend/internal/email"
	"cinemarathi_backend/internal/handlers"
	"cinemarathi_backend/internal/imageprocessor"
	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/routes"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/storage"
	"cinemarathi_backend/internal/validator"
	"cinemarathi_backend/internal/workers"
	"cinemarathi_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	shutdownTimeout    = 10 * time.Second
	slowQueryThreshold = 200 * time.Millisecond
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Configure(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "host", cfg.Database.Host, "name", cfg.Database.Name)

	if cfg.FirstAdminEmail != "" && cfg.FirstAdminPassword != "" {
		if _, created, err := EnsureAdmin(gormDB, cfg.FirstAdminEmail, cfg.FirstAdminPassword, DefaultAdminName); err != nil {
			logger.Fatal("Failed to seed first admin user", "error", err)
		} else if created {
			logger.Info("First admin user created", "email", cfg.FirstAdminEmail)
		}
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	serviceContainer := initializeServices(ctx, cfg, hub)

	workers.NewSubscriptionWorker(
		gormDB,
		serviceContainer.SubscriptionService,
		time.Duration(cfg.Workers.SubscriptionIntervalMinutes)*time.Minute,
	).Start(ctx)

	ginRouter := SetupRouter(cfg, gormDB, serviceContainer, hub)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}

// OpenDatabase connects gorm to MySQL and sizes the pool.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.NewGormLogger(level, slowQueryThreshold)}

	gormDB, err := gorm.Open(mysql.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return gormDB, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sc *services.ServiceContainer, hub *ws.Hub) *gin.Engine {
	appHandlers := handlers.NewAppHandlers(sc, validator.New())
	wsHandler := ws.NewHandler(hub)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)
	return ginRouter
}

func initializeServices(ctx context.Context, cfg *config.Config, hub *ws.Hub) *services.ServiceContainer {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:          cfg.Storage.Type,
		BasePath:      cfg.Storage.BasePath,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Endpoint:      cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	if cfg.Storage.Type != "local" && cfg.Storage.Bucket == "" {
		logger.Warn("S3 bucket is not configured, uploads will fail")
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	messenger := push.New(ctx, push.Config{
		ServiceAccountKey:  cfg.Firebase.ServiceAccountKey,
		ServiceAccountPath: cfg.Firebase.ServiceAccountPath,
	})

	mailer := email.NewProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})

	return services.NewServiceContainer(services.Dependencies{
		Storage:     storageInstance,
		Messenger:   messenger,
		Mailer:      mailer,
		Processor:   imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.ProfileMaxDimension),
		Broadcaster: hub,
	})
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(middleware.RateLimitMiddleware(rdb, cfg.Redis.RateLimitPerSec))
		logger.Info("Rate limiter enabled", "addr", cfg.Redis.Addr, "per_sec", cfg.Redis.RateLimitPerSec)
	}

	router.Use(middleware.DBMiddleware(db))
	return router
}
