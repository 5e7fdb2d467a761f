package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/handlers"
	"github.com/mbsnyc/mbsnyc-api/internal/middleware"
	"github.com/mbsnyc/mbsnyc-api/internal/repository"
	"github.com/mbsnyc/mbsnyc-api/internal/services"
	"github.com/mbsnyc/mbsnyc-api/pkg/jwt"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// routerDeps is everything the HTTP layer needs
type routerDeps struct {
	cfg            *config.Config
	contactService services.ContactServiceInterface
	db             repository.Pinger
	tokenManager   *jwt.TokenManager
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if cfg.AllowsAnyOrigin() {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	origins := append([]string{}, cfg.Server.AllowedOrigins...)
	if cfg.IsDevelopment() {
		origins = append(origins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	corsCfg.AllowOrigins = origins
	corsCfg.AllowCredentials = true
	return corsCfg
}

// newRouter builds the gin engine. Rate limiter cleanup stops when ctx is done.
func newRouter(ctx context.Context, deps routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(deps.cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(cors.New(corsConfig(deps.cfg)))

	generalRateLimiter := middleware.NewRateLimiter(ctx, 100, 200) // 100 req/sec, burst of 200
	contactRateLimiter := middleware.NewRateLimiter(ctx, 5, 10)    // 5 req/sec, burst of 10

	contactHandler := handlers.NewContactHandler(deps.contactService)
	healthHandler := handlers.NewHealthHandler(deps.db)

	api := router.Group("/api")
	api.GET("/", generalRateLimiter.Middleware(), handlers.APIRoot)
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api.POST("/contact",
		contactRateLimiter.Middleware(),
		middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize),
		contactHandler.SubmitContact)
	api.GET("/contact",
		generalRateLimiter.Middleware(),
		middleware.AdminAuthMiddleware(deps.tokenManager),
		contactHandler.ListSubmissions)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
