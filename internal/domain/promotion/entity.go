// internal/domain/promotion/entity.go
package promotion

import (
	"time"
)

// DiceRoll represents a user's daily discount roll. At most one row exists
// per (user, UTC calendar day); same-day visits re-read the stored roll.
type DiceRoll struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_roll_user_day,unique" json:"user_id"`
	RollDate   time.Time `gorm:"type:date;not null;index:idx_roll_user_day,unique" json:"roll_date"`
	PackedRoll int       `gorm:"not null" json:"packed_roll"` // die1*10 + die2
	Percentage int       `gorm:"not null" json:"percentage"`  // die1 + die2, 2..12
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name
func (DiceRoll) TableName() string {
	return "user_dice_rolls"
}

// Die1 returns the first die value from the packed encoding
func (r *DiceRoll) Die1() int {
	return r.PackedRoll / 10
}

// Die2 returns the second die value from the packed encoding
func (r *DiceRoll) Die2() int {
	return r.PackedRoll % 10
}

// SpecialDiscountSetting is the single admin-toggled flag that gates the
// dice promotion globally.
type SpecialDiscountSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Active    bool      `gorm:"default:false" json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (SpecialDiscountSetting) TableName() string {
	return "special_discount_settings"
}
