// internal/domain/discount/entity.go
package discount

import (
	"time"

	"gorm.io/gorm"
)

// DiscountCode represents an admin-managed discount code in the catalog.
// The storefront only ever reads these; creation and toggling happen in the
// admin back-office.
type DiscountCode struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Code       string         `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Percentage int            `gorm:"not null;check:percentage >= 1 AND percentage <= 100" json:"percentage"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (DiscountCode) TableName() string {
	return "discount_codes"
}

// State is the single active discount applied to a cart. An absent code
// always means percentage zero.
type State struct {
	Code       string `json:"code,omitempty"`
	Percentage int    `json:"percentage"`
}

// IsZero reports whether no discount is applied
func (s State) IsZero() bool {
	return s.Code == ""
}
