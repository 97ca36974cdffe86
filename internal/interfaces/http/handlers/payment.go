// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/order"
	"github.com/skatious/storefront-backend/internal/domain/payment"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// PaymentHandler handles payment gateway endpoints
type PaymentHandler struct {
	paymentService *payment.Service
	orderService   *order.Service
	logger         *logrus.Logger
	config         *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentService: payment.NewService(db, cfg),
		orderService:   order.NewService(db, cfg),
		logger:         logger,
		config:         cfg,
	}
}

// CreateOrder handles POST /payment/orders. Missing or invalid fields are a
// 400; a gateway failure is a 500.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req payment.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "amount, currency and receipt are required",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.paymentService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Payment gateway order creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create payment order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment order created",
		"data":    resp,
	})
}

// CreateForOrder handles POST /payment/orders/:id. Creates a gateway order
// for a placed order and records the payment attempt.
func (h *PaymentHandler) CreateForOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	resp, err := h.paymentService.CreateForOrder(c.Request.Context(), userID, uint(orderID))
	if err != nil {
		h.logger.WithError(err).Error("Payment creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment order created",
		"data":    resp,
	})
}

// ConfirmRequest represents a payment confirmation callback
type ConfirmRequest struct {
	OrderID           uint   `json:"order_id" binding:"required"`
	PaymentProviderID string `json:"payment_provider_id" binding:"required"`
}

// Confirm handles POST /payment/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "order_id and payment_provider_id are required",
			"details": err.Error(),
		})
		return
	}

	if err := h.orderService.MarkPaid(req.OrderID, req.PaymentProviderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment confirmed",
	})
}
