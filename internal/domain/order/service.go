// internal/domain/order/service.go
package order

import (
	"fmt"
	"time"

	"github.com/skatious/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles order queries and status management
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListResponse represents a paginated order listing
type ListResponse struct {
	Orders     []Order `json:"orders"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int64   `json:"total"`
	TotalPages int     `json:"total_pages"`
}

// ListForUser returns the user's order history, newest first
func (s *Service) ListForUser(userID uint, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &ListResponse{
		Orders:     orders,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// GetForUser returns a single order scoped to its owner
func (s *Service) GetForUser(userID, orderID uint) (*Order, error) {
	var ord Order
	err := s.db.Preload("Items").Preload("Payments").Preload("StatusHistory").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&ord).Error
	if err != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &ord, nil
}

// Cancel cancels an order if it has not shipped yet
func (s *Service) Cancel(userID, orderID uint) (*Order, error) {
	ord, err := s.GetForUser(userID, orderID)
	if err != nil {
		return nil, err
	}

	if !ord.CanBeCancelled() {
		return nil, fmt.Errorf("order can no longer be cancelled. Current status: %s", ord.Status)
	}

	return s.setStatus(ord, StatusCancelled, "Cancelled by customer", userID)
}

// Admin management

// AdminList returns all orders for the back-office
func (s *Service) AdminList(page, limit int, status string) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &ListResponse{
		Orders:     orders,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status  Status `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// UpdateStatus transitions an order to a new status (admin only)
func (s *Service) UpdateStatus(orderID uint, req *UpdateStatusRequest, adminID uint) (*Order, error) {
	var ord Order
	if err := s.db.Preload("Items").First(&ord, orderID).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	return s.setStatus(&ord, req.Status, req.Comment, adminID)
}

func (s *Service) setStatus(ord *Order, status Status, comment string, by uint) (*Order, error) {
	now := time.Now().UTC()

	ord.Status = status
	switch status {
	case StatusShipped:
		ord.ShippedAt = &now
	case StatusDelivered:
		ord.DeliveredAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ord).Error; err != nil {
			return err
		}
		history := StatusHistory{
			OrderID:   ord.ID,
			Status:    status,
			Comment:   comment,
			CreatedBy: by,
			CreatedAt: now,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return ord, nil
}

// MarkPaid records a successful payment against an order
func (s *Service) MarkPaid(orderID uint, providerID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ord Order
		if err := tx.First(&ord, orderID).Error; err != nil {
			return fmt.Errorf("order not found")
		}

		ord.PaymentStatus = PaymentStatusPaid
		ord.Status = StatusConfirmed
		if err := tx.Save(&ord).Error; err != nil {
			return err
		}

		return tx.Model(&Payment{}).
			Where("order_id = ? AND payment_provider_id = ?", orderID, providerID).
			Update("status", PaymentStatusPaid).Error
	})
}
