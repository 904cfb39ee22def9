// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/catalog"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/routes"
	"github.com/your-org/storefront-gateway/internal/pkg/logger"
	"github.com/your-org/storefront-gateway/internal/session"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	redisClient *redis.Client
	log         *logrus.Logger

	upstream  *upstream.Client
	sessions  *session.Manager
	home      *catalog.Service
	startedAt time.Time

	stopWatch func()
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, redisClient *redis.Client) *Server {
	log := logger.New(cfg)

	sessions := session.NewManager(session.NewRedisStore(redisClient, cfg.Session.TTL))
	client := upstream.NewClient(cfg)

	return &Server{
		config:      cfg,
		redisClient: redisClient,
		log:         log,
		upstream:    client,
		sessions:    sessions,
		home:        catalog.NewService(client, log),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()

	s.setupMiddleware()
	s.setupRoutes()

	s.startedAt = time.Now()
	s.stopWatch = s.watchSessions()

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.log.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"upstream": s.config.Upstream.BaseURL,
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	if s.stopWatch != nil {
		s.stopWatch()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server stopped gracefully")
	return nil
}

// watchSessions logs session lifecycle events until the returned cancel
// function runs
func (s *Server) watchSessions() func() {
	events, cancel := s.sessions.Subscribe()
	go func() {
		for ev := range events {
			s.log.WithFields(logrus.Fields{
				"session_id": ev.SessionID,
				"event":      string(ev.Kind),
			}).Info("Session event")
		}
	}()
	return cancel
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.log))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// CORS middleware
	s.gin.Use(middleware.CORS(s.config))

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())

	// Rate limiting middleware
	s.gin.Use(middleware.RateLimit(s.config, s.redisClient))

	// Prometheus metrics middleware
	s.gin.Use(middleware.Metrics())

	// Timeout middleware
	s.gin.Use(middleware.Timeout(30 * time.Second))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)
	s.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	apiV1 := s.gin.Group("/api/v1")

	routes.SetupAuthRoutes(apiV1, s.upstream, s.sessions, s.config)
	routes.SetupCatalogRoutes(apiV1, s.upstream, s.home)
	routes.SetupCartRoutes(apiV1, s.upstream, s.sessions, s.config)
	routes.SetupWishlistRoutes(apiV1, s.upstream, s.sessions, s.config)
	routes.SetupOrderRoutes(apiV1, s.upstream, s.sessions, s.config)
	routes.SetupAddressRoutes(apiV1, s.upstream, s.sessions, s.config)

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     "Storefront Gateway",
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"auth":       "/api/v1/auth",
					"home":       "/api/v1/home",
					"products":   "/api/v1/products",
					"cart":       "/api/v1/cart",
					"wishlist":   "/api/v1/wishlist",
					"orders":     "/api/v1/orders",
					"checkout":   "/api/v1/checkout",
					"addresses":  "/api/v1/addresses",
					"categories": "/api/v1/categories",
					"brands":     "/api/v1/brands",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "redis ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).String(),
	})
}
