// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	req := &product.ListRequest{
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 20),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if categoryParam := c.Query("category_id"); categoryParam != "" {
		if categoryID, err := strconv.ParseUint(categoryParam, 10, 32); err == nil {
			id := uint(categoryID)
			req.CategoryID = &id
		}
	}
	if featuredParam := c.Query("featured"); featuredParam != "" {
		featured := featuredParam == "true"
		req.Featured = &featured
	}

	resp, err := h.productService.List(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// Get handles GET /products/:id. The parameter may be a numeric ID or a slug.
func (h *ProductHandler) Get(c *gin.Context) {
	param := c.Param("id")

	var prod *product.Product
	var err error
	if id, parseErr := strconv.ParseUint(param, 10, 32); parseErr == nil {
		prod, err = h.productService.GetByID(uint(id))
	} else {
		prod, err = h.productService.GetBySlug(param)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": prod,
	})
}

// Admin catalog management

// AdminList handles GET /admin/products
func (h *ProductHandler) AdminList(c *gin.Context) {
	resp, err := h.productService.AdminList(parseIntQuery(c, "page", 1), parseIntQuery(c, "limit", 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.productService.Create(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"data":    prod,
	})
}

// Update handles PUT /admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req product.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.productService.Update(uint(id), &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"data":    prod,
	})
}

// Delete handles DELETE /admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := h.productService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// parseIntQuery reads an integer query parameter with a default
func parseIntQuery(c *gin.Context, name string, def int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return value
}
