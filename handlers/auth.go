package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulsedash/pulsedash/internal/auth"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/pulsedash/pulsedash/pkg/logger"
	"github.com/pulsedash/pulsedash/pkg/metrics"
	"github.com/pulsedash/pulsedash/pkg/middleware"
)

// SignupRequest is the POST /api/auth/signup body.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler serves signup, login and the current-user lookup.
type AuthHandler struct {
	cfg      *config.Config
	authSvc  *auth.Service
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, a *auth.Service, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: a, usersSvc: u}
}

// Register routes under /api/auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/login", h.Login)
	a.GET("/me", middleware.Auth(h.cfg), h.Me)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		return
	}
	err := h.authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("signup", "ok").Inc()
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
	case errors.Is(err, users.ErrDuplicateEmail):
		metrics.AuthAttempts.WithLabelValues("signup", "duplicate").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, auth.ErrValidation):
		metrics.AuthAttempts.WithLabelValues("signup", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		logger.Errorf("signup error: %v", err)
		metrics.AuthAttempts.WithLabelValues("signup", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}
	token, user, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("login", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	case errors.Is(err, auth.ErrInvalidCredentials):
		// Unknown email and wrong password answer identically.
		metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	default:
		logger.Errorf("login error: %v", err)
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}
	user, err := h.usersSvc.GetByID(c.Request.Context(), claims.UserID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"user": user})
	case errors.Is(err, users.ErrNotFound):
		// Record removed after the token was issued.
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		logger.Errorf("me lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
