// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents the order status
type Status string

const (
	StatusPending           Status = "pending"
	StatusPaymentProcessing Status = "payment_processing"
	StatusConfirmed         Status = "confirmed"
	StatusShipped           Status = "shipped"
	StatusDelivered         Status = "delivered"
	StatusCancelled         Status = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order represents a placed order. The discount fields are written once at
// checkout from the cart's discount state and never change afterwards.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	Email         string        `gorm:"not null;size:255" json:"email"`
	Status        Status        `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'pending'" json:"payment_status"`

	// Financial information, in paise
	SubtotalAmount     int64  `gorm:"not null" json:"subtotal_amount"`
	DiscountCode       string `gorm:"size:50" json:"discount_code"`
	DiscountPercentage int    `gorm:"default:0" json:"discount_percentage"`
	DiscountAmount     int64  `gorm:"default:0" json:"discount_amount"`
	TotalAmount        int64  `gorm:"not null" json:"total_amount"`
	Currency           string `gorm:"size:3;default:'INR'" json:"currency"`

	// Shipping
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	Notes           string  `gorm:"type:text" json:"notes"`

	// Timestamps
	ShippedAt   *time.Time     `json:"shipped_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Payments      []Payment       `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`
	StatusHistory []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem snapshots a purchased line item at checkout time
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	SKU        string    `gorm:"not null;size:100" json:"sku"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Size       string    `gorm:"not null;size:20" json:"size"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Unit price in paise at checkout
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
}

// Payment represents a payment attempt against an order
type Payment struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderID           uint          `gorm:"not null;index" json:"order_id"`
	PaymentProviderID string        `gorm:"size:255" json:"payment_provider_id"` // Razorpay order id
	Amount            int64         `gorm:"not null" json:"amount"`
	Currency          string        `gorm:"size:3;default:'INR'" json:"currency"`
	Status            PaymentStatus `gorm:"not null" json:"status"`
	Gateway           string        `gorm:"size:50;default:'razorpay'" json:"gateway"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// StatusHistory tracks order status changes
type StatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Status    Status    `gorm:"not null" json:"status"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Address represents a shipping address embedded in an order
type Address struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2;default:'IN'" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string         { return "orders" }
func (OrderItem) TableName() string     { return "order_items" }
func (Payment) TableName() string       { return "payments" }
func (StatusHistory) TableName() string { return "order_status_history" }

// GenerateOrderNumber builds the order number for a persisted order.
// Format: SKT-YYYYMMDD-XXXXX
func GenerateOrderNumber(id uint, at time.Time) string {
	return fmt.Sprintf("SKT-%s-%05d", at.UTC().Format("20060102"), id)
}

// GetFormattedTotal returns total amount in rupees for display
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending ||
		o.Status == StatusPaymentProcessing ||
		o.Status == StatusConfirmed
}
