// internal/interfaces/http/handlers/promotion.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/domain/promotion"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// PromotionHandler handles the dice roll promotion endpoints
type PromotionHandler struct {
	promotionService *promotion.Service
	config           *config.Config
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *PromotionHandler {
	discounts := discount.NewService(db, redisClient, cfg)
	return &PromotionHandler{
		promotionService: promotion.NewService(db, discounts, cfg),
		config:           cfg,
	}
}

// Status handles GET /promotion/dice. Reports whether the promotion is
// running and whether the caller has already rolled today.
func (h *PromotionHandler) Status(c *gin.Context) {
	active, err := h.promotionService.IsActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load promotion status",
		})
		return
	}

	resp := gin.H{"active": active}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		roll, err := h.promotionService.TodayRoll(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load roll status",
			})
			return
		}
		resp["rolled_today"] = roll != nil
		if roll != nil {
			userUUID, _ := middleware.GetUserUUIDFromContext(c)
			resp["code"] = h.promotionService.CodeForRoll(roll, userUUID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// Roll handles POST /promotion/dice/roll. One roll per user per UTC day;
// repeat calls return the day's existing roll.
func (h *PromotionHandler) Roll(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}
	userUUID, _ := middleware.GetUserUUIDFromContext(c)

	result, err := h.promotionService.Roll(c.Request.Context(), userID, userUUID)
	if err != nil {
		if errors.Is(err, promotion.ErrPromotionInactive) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "The dice promotion is not currently active",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to roll dice",
		})
		return
	}

	message := "Dice rolled"
	if result.AlreadyRolled {
		message = "You have already rolled today"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    result,
	})
}

// AdminStatusRequest represents an admin toggle of the promotion
type AdminStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetStatus handles PUT /admin/promotion/dice
func (h *PromotionHandler) SetStatus(c *gin.Context) {
	var req AdminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "active field required",
		})
		return
	}

	if err := h.promotionService.SetActive(*req.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update promotion status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion status updated",
		"data":    gin.H{"active": *req.Active},
	})
}
