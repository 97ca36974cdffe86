// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/skatious/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service stores product images on local disk and records them
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ValidateImage checks that an upload is an image within the size limit
func ValidateImage(contentType string, size, maxSize int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("only image uploads are allowed, got %s", contentType)
	}
	if size <= 0 {
		return fmt.Errorf("empty file")
	}
	if size > maxSize {
		return fmt.Errorf("file size %d exceeds the %d byte limit", size, maxSize)
	}
	return nil
}

// extensionFor maps a content type to a file extension, falling back to the
// original file name's extension.
func extensionFor(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if ext := filepath.Ext(fileName); ext != "" {
		return strings.ToLower(ext)
	}
	return ".bin"
}

// StoreProductImage saves an uploaded image under the product's directory
// and records it. Files are named by a fresh UUID so uploads never collide.
func (s *Service) StoreProductImage(productID, uploadedBy uint, header *multipart.FileHeader) (*UploadedFile, error) {
	contentType := header.Header.Get("Content-Type")
	if err := ValidateImage(contentType, header.Size, s.config.Upload.MaxSize); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + extensionFor(contentType, header.Filename)
	relPath := filepath.Join(fmt.Sprintf("%d", productID), name)
	absPath := filepath.Join(s.config.Upload.LocalPath, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	file := UploadedFile{
		ProductID:   productID,
		FileName:    header.Filename,
		StoragePath: absPath,
		PublicURL:   fmt.Sprintf("%s/%d/%s", s.config.Upload.PublicBaseURL, productID, name),
		ContentType: contentType,
		SizeBytes:   header.Size,
		UploadedBy:  uploadedBy,
	}
	if err := s.db.Create(&file).Error; err != nil {
		os.Remove(absPath)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return &file, nil
}

// ListForProduct returns the stored images for a product
func (s *Service) ListForProduct(productID uint) ([]UploadedFile, error) {
	var files []UploadedFile
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return files, nil
}

// Delete removes a stored image and its file
func (s *Service) Delete(fileID uint) error {
	var file UploadedFile
	if err := s.db.First(&file, fileID).Error; err != nil {
		return fmt.Errorf("file not found")
	}

	if err := s.db.Delete(&file).Error; err != nil {
		return err
	}

	// Best effort; the record is already gone
	os.Remove(file.StoragePath)
	return nil
}
