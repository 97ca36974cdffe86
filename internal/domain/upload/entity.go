// internal/domain/upload/entity.go
package upload

import (
	"time"
)

// UploadedFile tracks a stored product image
type UploadedFile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	FileName    string    `gorm:"not null;size:255" json:"file_name"`
	StoragePath string    `gorm:"not null;size:500" json:"storage_path"`
	PublicURL   string    `gorm:"not null;size:500" json:"public_url"`
	ContentType string    `gorm:"not null;size:100" json:"content_type"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	UploadedBy  uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
