// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/upload"
	"github.com/skatious/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// UploadHandler handles product image uploads
type UploadHandler struct {
	uploadService *upload.Service
	config        *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *gorm.DB, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: upload.NewService(db, cfg),
		config:        cfg,
	}
}

// UploadProductImage handles POST /admin/products/:id/images
func (h *UploadHandler) UploadProductImage(c *gin.Context) {
	adminID, _ := middleware.GetUserIDFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "image file required",
		})
		return
	}

	file, err := h.uploadService.StoreProductImage(uint(productID), adminID, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded",
		"data":    file,
	})
}

// ListProductImages handles GET /admin/products/:id/images
func (h *UploadHandler) ListProductImages(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	files, err := h.uploadService.ListForProduct(uint(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list images",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": files,
	})
}

// DeleteImage handles DELETE /admin/uploads/:id
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid file ID",
		})
		return
	}

	if err := h.uploadService.Delete(uint(fileID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image deleted",
	})
}
