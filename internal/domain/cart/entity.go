// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartItem represents a cart line item stored in database for authenticated users.
// A line item is identified by (user, product, size); adding an existing
// identity increments quantity instead of creating a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_identity,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_identity,unique" json:"product_id"`
	Size      string    `gorm:"not null;size:20;index:idx_cart_identity,unique" json:"size"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart represents a cart for anonymous visitors (stored in Redis)
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem represents a line item in an anonymous cart
type SessionCartItem struct {
	ProductID uint      `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Totals represents calculated cart totals. Unit prices are looked up from
// the catalog at read time, so the subtotal always reflects current pricing.
type Totals struct {
	ItemCount          int    `json:"item_count"`     // Number of unique line items
	TotalQuantity      int    `json:"total_quantity"` // Sum of all quantities
	Subtotal           int64  `json:"subtotal"`       // In paise
	DiscountCode       string `json:"discount_code,omitempty"`
	DiscountPercentage int    `json:"discount_percentage"`
	DiscountAmount     int64  `json:"discount_amount"`
	TotalAmount        int64  `json:"total_amount"`
}
