// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/cart"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/domain/user"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"github.com/skatious/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService  *user.Service
	cartService  *cart.Service
	emailService *email.Service
	logger       *logrus.Logger
	config       *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	discounts := discount.NewService(db, redisClient, cfg)
	return &AuthHandler{
		userService:  user.NewService(db, cfg),
		cartService:  cart.NewService(db, redisClient, discounts, cfg),
		emailService: email.NewService(cfg, logger),
		logger:       logger,
		config:       cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.userService.Register(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.mergeSessionCart(c, resp.User.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    resp,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.mergeSessionCart(c, resp.User.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    resp,
	})
}

// mergeSessionCart folds an anonymous session cart into the user's cart
// when the request carries a session identifier.
func (h *AuthHandler) mergeSessionCart(c *gin.Context, userID uint) {
	sessionID := middleware.GetSessionIDFromContext(c)
	if sessionID == "" {
		return
	}
	if err := h.cartService.MergeSessionCartToUser(c.Request.Context(), userID, sessionID); err != nil {
		h.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"session_id": sessionID,
		}).WithError(err).Warn("Failed to merge session cart")
	}
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Refresh token required",
		})
		return
	}

	resp, err := h.userService.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"data":    resp,
	})
}

// ForgotPasswordRequest represents a reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email required",
		})
		return
	}

	usr, token, err := h.userService.ForgotPassword(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process request",
		})
		return
	}

	if usr != nil {
		if err := h.emailService.SendPasswordReset(usr.Email, usr.FirstName, token); err != nil {
			h.logger.WithError(err).Error("Failed to send password reset email")
		}
	}

	// Same response whether or not the account exists
	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.userService.ResetPassword(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	usr, err := h.userService.Profile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": usr,
	})
}
