// internal/interfaces/http/handlers/discount.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"gorm.io/gorm"
)

// DiscountHandler handles discount endpoints
type DiscountHandler struct {
	discountService *discount.Service
	config          *config.Config
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *DiscountHandler {
	return &DiscountHandler{
		discountService: discount.NewService(db, redisClient, cfg),
		config:          cfg,
	}
}

// ApplyRequest represents a discount code application
type ApplyRequest struct {
	Code string `json:"code" binding:"required"`
}

// Apply handles POST /cart/discount. Applying a second code replaces the
// first; an unknown code leaves the current discount untouched.
func (h *DiscountHandler) Apply(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Discount code required",
		})
		return
	}

	state, err := h.discountService.ApplyCode(c.Request.Context(), userID, sessionID, req.Code)
	if err != nil {
		if errors.Is(err, discount.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid discount code",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to apply discount",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount applied",
		"data":    state,
	})
}

// Current handles GET /cart/discount
func (h *DiscountHandler) Current(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	state, err := h.discountService.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load discount",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": state,
	})
}

// Remove handles DELETE /cart/discount
func (h *DiscountHandler) Remove(c *gin.Context) {
	userID, sessionID, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sign in or provide an X-Session-ID header",
		})
		return
	}

	if err := h.discountService.Remove(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove discount",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount removed",
	})
}

// Admin management of discount codes

// ListCodes handles GET /admin/discounts
func (h *DiscountHandler) ListCodes(c *gin.Context) {
	codes, err := h.discountService.ListCodes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list discount codes",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": codes,
	})
}

// CreateCode handles POST /admin/discounts
func (h *DiscountHandler) CreateCode(c *gin.Context) {
	var req discount.CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	code, err := h.discountService.CreateCode(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Discount code created",
		"data":    code,
	})
}

// UpdateCode handles PUT /admin/discounts/:id
func (h *DiscountHandler) UpdateCode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid discount code ID",
		})
		return
	}

	var req discount.UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	code, err := h.discountService.UpdateCode(uint(id), &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount code updated",
		"data":    code,
	})
}

// DeleteCode handles DELETE /admin/discounts/:id
func (h *DiscountHandler) DeleteCode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid discount code ID",
		})
		return
	}

	if err := h.discountService.DeleteCode(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount code deleted",
	})
}
