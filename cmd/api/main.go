package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/repository"
	"github.com/mbsnyc/mbsnyc-api/internal/services"
	"github.com/mbsnyc/mbsnyc-api/pkg/archive"
	"github.com/mbsnyc/mbsnyc-api/pkg/db"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/jwt"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/mailer"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"github.com/mbsnyc/mbsnyc-api/pkg/profiling"
	"github.com/mbsnyc/mbsnyc-api/pkg/tracing"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MBS NYC API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Options{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.LogError(shutdownErr, "Failed to shutdown tracer")
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, profiling.Identity{
		ServiceName: cfg.Observability.ServiceName,
		Namespace:   cfg.Observability.ServiceNamespace,
		Version:     cfg.Observability.ServiceVersion,
		InstanceID:  cfg.Observability.ServiceInstanceID,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	httpClient := httpclient.NewStandardClient()

	// Interfaces stay nil unless the integration is configured
	var emailSender services.EmailSender
	if cfg.Email.Enabled() {
		emailSender = mailer.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, httpClient)
	} else {
		logger.Warn("Notification emails disabled: RESEND_API_KEY not configured")
	}

	var archiver services.SubmissionArchiver
	if cfg.Archive.Enabled() {
		storageClient, storageErr := archive.NewStorageClient(
			cfg.Archive.AccessKeyID,
			cfg.Archive.SecretAccessKey,
			cfg.Archive.BucketName,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
		)
		if storageErr != nil {
			logger.Fatal("Failed to initialize archive storage client", zap.Error(storageErr))
		}
		archiver = storageClient
	}

	var tokenManager *jwt.TokenManager
	if cfg.Admin.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.TokenTTLHrs)
	} else if cfg.IsProduction() {
		logger.Error("GET /api/contact is unauthenticated in production: ADMIN_JWT_SECRET not configured")
	} else {
		logger.Warn("GET /api/contact is unauthenticated: ADMIN_JWT_SECRET not configured")
	}

	contactRepo := repository.NewPgContactRepository(pool)
	contactService := services.NewContactService(contactRepo, emailSender, archiver, cfg, httpClient)

	gin.SetMode(cfg.Server.GinMode)
	router := newRouter(ctx, routerDeps{
		cfg:            cfg,
		contactService: contactService,
		db:             pool,
		tokenManager:   tokenManager,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Server forced to shutdown", zap.String("port", cfg.Server.Port))
	}

	logger.Info("Server exited")
}
