// internal/domain/product/category_service.go
package product

import (
	"fmt"

	"github.com/skatious/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// CategoryService handles category management
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryRequest represents a category create/update request
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// List returns all active categories ordered for display
func (s *CategoryService) List() ([]Category, error) {
	var categories []Category
	err := s.db.Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID returns a category with its active products
func (s *CategoryService) GetByID(id uint) (*Category, error) {
	var category Category
	err := s.db.Preload("Products", "is_active = ?", true).
		Where("id = ? AND is_active = ?", id, true).
		First(&category).Error
	if err != nil {
		return nil, fmt.Errorf("category not found")
	}
	return &category, nil
}

// Create creates a new category
func (s *CategoryService) Create(req *CategoryRequest) (*Category, error) {
	category := Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// Update updates an existing category
func (s *CategoryService) Update(id uint, req *CategoryRequest) (*Category, error) {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("category not found")
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description
	category.Image = req.Image
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// Delete soft-deletes a category. Categories with active products are kept.
func (s *CategoryService) Delete(id uint) error {
	var count int64
	if err := s.db.Model(&Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category has %d products and cannot be deleted", count)
	}

	return s.db.Delete(&Category{}, id).Error
}
