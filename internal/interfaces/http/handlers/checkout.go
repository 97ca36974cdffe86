// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/cart"
	"github.com/skatious/storefront-backend/internal/domain/checkout"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"github.com/skatious/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// CheckoutHandler handles order placement
type CheckoutHandler struct {
	checkoutService *checkout.Service
	emailService    *email.Service
	logger          *logrus.Logger
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *CheckoutHandler {
	discounts := discount.NewService(db, redisClient, cfg)
	cartService := cart.NewService(db, redisClient, discounts, cfg)
	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, redisClient, cartService, discounts, cfg),
		emailService:    email.NewService(cfg, logger),
		logger:          logger,
		config:          cfg,
	}
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ord, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := h.emailService.SendOrderConfirmation(ord, req.FirstName); err != nil {
		h.logger.WithField("order_number", ord.OrderNumber).
			WithError(err).Warn("Failed to send order confirmation email")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"data":    ord,
	})
}
