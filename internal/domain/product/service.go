// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/skatious/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents product listing filters
type ListRequest struct {
	Page       int
	Limit      int
	CategoryID *uint
	Search     string
	Featured   *bool
	SortBy     string
	SortOrder  string
}

// ListResponse represents a paginated product listing
type ListResponse struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int64     `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// List returns active products with pagination and filtering
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}
	if req.Featured != nil {
		query = query.Where("is_featured = ?", *req.Featured)
	}
	if req.Search != "" {
		term := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	order := "created_at DESC"
	switch req.SortBy {
	case "price":
		order = "price"
	case "name":
		order = "name"
	}
	if req.SortBy != "" && strings.EqualFold(req.SortOrder, "desc") {
		order += " DESC"
	}

	var products []Product
	err := query.Preload("Category").Preload("Images").
		Order(order).
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListResponse{
		Products:   products,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetByID returns a single active product with its images and reviews
func (s *Service) GetByID(id uint) (*Product, error) {
	var prod Product
	err := s.db.Preload("Category").Preload("Images").Preload("Reviews").
		Where("id = ? AND is_active = ?", id, true).First(&prod).Error
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}

// GetBySlug returns a single active product by slug
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var prod Product
	err := s.db.Preload("Category").Preload("Images").Preload("Reviews").
		Where("slug = ? AND is_active = ?", slug, true).First(&prod).Error
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}

// Admin management

// CreateRequest represents an admin product creation request
type CreateRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Sizes       string `json:"sizes"`
	Quantity    int    `json:"quantity"`
	IsActive    *bool  `json:"is_active"`
	IsFeatured  *bool  `json:"is_featured"`
}

// UpdateRequest represents an admin product update request
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" binding:"omitempty,min=1"`
	CategoryID  *uint   `json:"category_id"`
	Sizes       *string `json:"sizes"`
	Quantity    *int    `json:"quantity"`
	IsActive    *bool   `json:"is_active"`
	IsFeatured  *bool   `json:"is_featured"`
}

// AdminList returns all products including inactive ones
func (s *Service) AdminList(page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&Product{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	err := s.db.Preload("Category").Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListResponse{
		Products:   products,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Create creates a new product
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	prod := Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Sizes:       req.Sizes,
		Quantity:    req.Quantity,
		IsActive:    true,
	}
	if prod.Sizes == "" {
		prod.Sizes = "S,M,L,XL"
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &prod, nil
}

// Update updates an existing product
func (s *Service) Update(id uint, req *UpdateRequest) (*Product, error) {
	var prod Product
	if err := s.db.First(&prod, id).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.CategoryID != nil {
		prod.CategoryID = *req.CategoryID
	}
	if req.Sizes != nil {
		prod.Sizes = *req.Sizes
	}
	if req.Quantity != nil {
		prod.Quantity = *req.Quantity
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}

	if err := s.db.Save(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &prod, nil
}

// Delete soft-deletes a product
func (s *Service) Delete(id uint) error {
	return s.db.Delete(&Product{}, id).Error
}

// AddImage attaches an uploaded image to a product
func (s *Service) AddImage(productID uint, url, altText string, isPrimary bool) (*ProductImage, error) {
	var prod Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	image := ProductImage{
		ProductID: productID,
		URL:       url,
		AltText:   altText,
		IsPrimary: isPrimary,
	}
	if err := s.db.Create(&image).Error; err != nil {
		return nil, fmt.Errorf("failed to save product image: %w", err)
	}
	return &image, nil
}
