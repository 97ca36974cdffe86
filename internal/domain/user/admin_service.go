// internal/domain/user/admin_service.go
package user

import (
	"fmt"

	"gorm.io/gorm"
)

// AdminListResponse represents a paginated user listing for the back-office
type AdminListResponse struct {
	Users      []User `json:"users"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
}

// AdminList returns all users with optional email search
func (s *Service) AdminList(page, limit int, search string) (*AdminListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []User
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &AdminListResponse{
		Users:      users,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// SetStatus enables or disables an account
func (s *Service) SetStatus(userID uint, active bool) (*User, error) {
	var usr User
	if err := s.db.First(&usr, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	usr.IsActive = active
	if err := s.db.Save(&usr).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return &usr, nil
}

// AdminGet returns a user with addresses for the back-office
func (s *Service) AdminGet(userID uint) (*User, error) {
	var usr User
	if err := s.db.Preload("Addresses").First(&usr, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &usr, nil
}

// SaveAddressRequest represents an address create/update
type SaveAddressRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	IsDefault    bool   `json:"is_default"`
}

// AddAddress saves a new shipping address for the user
func (s *Service) AddAddress(userID uint, req *SaveAddressRequest) (*Address, error) {
	addr := Address{
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	}
	if addr.Country == "" {
		addr.Country = "IN"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&Address{}).Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&addr).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}
	return &addr, nil
}

// DeleteAddress removes one of the user's saved addresses
func (s *Service) DeleteAddress(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("address not found")
	}
	return nil
}
