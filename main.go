package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pulsedash/pulsedash/handlers"
	"github.com/pulsedash/pulsedash/internal/auth"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/database"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/pulsedash/pulsedash/pkg/logger"
	"github.com/pulsedash/pulsedash/pkg/metrics"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v", cfg.Server.Environment, cfg.MongoDB.URI != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Credential store: Mongo when configured, with retry/backoff to tolerate
	// startup races; otherwise an in-memory store for local development.
	ctx := context.Background()
	var repo users.Repository
	mongoConnected := false
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				defer func() { _ = client.Disconnect(ctx) }()
				col := client.Database(cfg.MongoDB.Database).Collection("users")
				repo = users.NewMongoRepo(col)
				mongoConnected = true
				logger.Infof("Connected to MongoDB (%s)", cfg.MongoDB.Database)
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
	}
	if repo == nil {
		logger.Warnf("no MongoDB available — using in-memory user store (data is lost on restart)")
		repo = users.NewMemoryRepo()
	}

	usersSvc := users.NewService(repo)
	authSvc := auth.NewService(cfg, repo)

	// readiness endpoint — 200 only when the credential store is usable
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"store": true, "mongo": mongoConnected}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	api := r.Group("/api")
	handlers.NewAuthHandler(cfg, authSvc, usersSvc).Register(api)
	handlers.NewUsersHandler(cfg, usersSvc).Register(api)
	handlers.RegisterSeed(api, cfg, usersSvc)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting pulsedash server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
