// internal/domain/product/review_service.go
package product

import (
	"fmt"

	"github.com/skatious/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ReviewService handles product reviews
type ReviewService struct {
	db     *gorm.DB
	config *config.Config
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cfg *config.Config) *ReviewService {
	return &ReviewService{
		db:     db,
		config: cfg,
	}
}

// ReviewRequest represents a review submission
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReviewSummary represents aggregated review data for a product
type ReviewSummary struct {
	Reviews       []ProductReview `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
}

// ListForProduct returns reviews for a product with an aggregate rating
func (s *ReviewService) ListForProduct(productID uint) (*ReviewSummary, error) {
	var reviews []ProductReview
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	summary := &ReviewSummary{
		Reviews:     reviews,
		ReviewCount: int64(len(reviews)),
	}

	if len(reviews) > 0 {
		var total int
		for _, r := range reviews {
			total += r.Rating
		}
		summary.AverageRating = float64(total) / float64(len(reviews))
	}

	return summary, nil
}

// Create adds a review for a product. A user can review a product once;
// submitting again replaces the prior review.
func (s *ReviewService) Create(productID, userID uint, req *ReviewRequest) (*ProductReview, error) {
	var prod Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	var review ProductReview
	result := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review)
	if result.Error == gorm.ErrRecordNotFound {
		review = ProductReview{
			ProductID: productID,
			UserID:    userID,
			Rating:    req.Rating,
			Title:     req.Title,
			Content:   req.Content,
		}
		if err := s.db.Create(&review).Error; err != nil {
			return nil, fmt.Errorf("failed to create review: %w", err)
		}
		return &review, nil
	} else if result.Error != nil {
		return nil, result.Error
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Content = req.Content
	if err := s.db.Save(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

// Delete removes a user's own review
func (s *ReviewService) Delete(reviewID, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", reviewID, userID).Delete(&ProductReview{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}
