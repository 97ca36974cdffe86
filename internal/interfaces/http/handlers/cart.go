// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/cart"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	discounts := discount.NewService(db, redisClient, cfg)
	return &CartHandler{
		cartService: cart.NewService(db, redisClient, discounts, cfg),
		config:      cfg,
	}
}

// cartOwner resolves the cart's owner: user ID for signed-in requests,
// session ID otherwise.
func cartOwner(c *gin.Context) (*uint, string, bool) {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return &userID, "", true
	}
	sessionID := middleware.GetSessionIDFromContext(c)
	if sessionID == "" {
		return nil, "", false
	}
	return nil, sessionID, true
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": cartResponse,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.AddToCart(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity of zero or less
// removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}
	size := c.Query("size")
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "size query parameter required",
		})
		return
	}

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.SetQuantity(c.Request.Context(), userID, sessionID, uint(productID), size, *req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    cartResponse,
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}
	size := c.Query("size")
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "size query parameter required",
		})
		return
	}

	cartResponse, err := h.cartService.RemoveFromCart(c.Request.Context(), userID, sessionID, uint(productID), size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart. Clearing the cart also drops any applied
// discount.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// CartCount handles GET /cart/count
func (h *CartHandler) CartCount(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"count": 0},
		})
		return
	}

	count, err := h.cartService.ItemCount(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count cart items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"count": count},
	})
}
