package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/pulsedash/pulsedash/pkg/logger"
	"github.com/pulsedash/pulsedash/pkg/metrics"
	"github.com/pulsedash/pulsedash/pkg/middleware"
)

// UsersHandler serves the user directory and dashboard statistics. Every
// route is behind the bearer-token guard.
type UsersHandler struct {
	cfg *config.Config
	svc *users.Service
}

func NewUsersHandler(cfg *config.Config, svc *users.Service) *UsersHandler {
	return &UsersHandler{cfg: cfg, svc: svc}
}

// Register routes under /api
func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	guard := middleware.Auth(h.cfg)
	rg.GET("/users", guard, h.List)
	rg.GET("/dashboard/stats", guard, h.Stats)
}

func (h *UsersHandler) List(c *gin.Context) {
	metrics.DirectoryRequests.WithLabelValues("users").Inc()
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list users error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UsersHandler) Stats(c *gin.Context) {
	metrics.DirectoryRequests.WithLabelValues("stats").Inc()
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		logger.Errorf("dashboard stats error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
