// internal/domain/user/entity.go
package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a customer account
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"uniqueIndex;not null;size:36" json:"uuid"`
	Email        string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string         `gorm:"not null;size:255" json:"-"`
	FirstName    string         `gorm:"not null;size:100" json:"first_name"`
	LastName     string         `gorm:"not null;size:100" json:"last_name"`
	Phone        string         `gorm:"size:20" json:"phone"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	IsAdmin      bool           `gorm:"default:false" json:"is_admin"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// BeforeCreate assigns the user's stable public identifier
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.New().String()
	}
	return nil
}

// Address represents a saved shipping address
type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	FirstName    string    `gorm:"not null;size:100" json:"first_name"`
	LastName     string    `gorm:"not null;size:100" json:"last_name"`
	AddressLine1 string    `gorm:"not null;size:255" json:"address_line1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line2"`
	City         string    `gorm:"not null;size:100" json:"city"`
	State        string    `gorm:"not null;size:100" json:"state"`
	PostalCode   string    `gorm:"not null;size:20" json:"postal_code"`
	Country      string    `gorm:"size:2;default:'IN'" json:"country"`
	Phone        string    `gorm:"size:20" json:"phone"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordResetToken holds a one-time password reset token
type PasswordResetToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Token     string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsValid reports whether the token can still be redeemed
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

// GetFullName returns the user's display name
func (u *User) GetFullName() string {
	return u.FirstName + " " + u.LastName
}

// TableName overrides
func (User) TableName() string               { return "users" }
func (Address) TableName() string            { return "user_addresses" }
func (PasswordResetToken) TableName() string { return "password_reset_tokens" }
