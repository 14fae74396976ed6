package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/pulsedash/pulsedash/pkg/logger"
)

// RegisterSeed mounts POST /api/seed, a development helper that resets the
// store to the two sample users. Refused outright in production.
func RegisterSeed(rg *gin.RouterGroup, cfg *config.Config, svc *users.Service) {
	rg.POST("/seed", func(c *gin.Context) {
		if cfg.IsProduction() {
			c.JSON(http.StatusForbidden, gin.H{"message": "Seed route not available in production"})
			return
		}
		if err := svc.Seed(c.Request.Context()); err != nil {
			logger.Errorf("seed error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Database seeded successfully"})
	})
}
