// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/skatious/storefront-backend/internal/domain/cart"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/domain/order"
	"github.com/skatious/storefront-backend/internal/domain/product"
	"github.com/skatious/storefront-backend/internal/domain/promotion"
	"github.com/skatious/storefront-backend/internal/domain/upload"
	"github.com/skatious/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database schema management
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration handler
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs gorm auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database migrations...")

	err := m.db.AutoMigrate(
		&user.User{},
		&user.Address{},
		&user.PasswordResetToken{},
		&product.Category{},
		&product.Product{},
		&product.ProductImage{},
		&product.ProductReview{},
		&cart.CartItem{},
		&discount.DiscountCode{},
		&promotion.DiceRoll{},
		&promotion.SpecialDiscountSetting{},
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&order.StatusHistory{},
		&upload.UploadedFile{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// CreateIndexes creates indexes that auto-migration does not cover
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products (category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products (is_featured) WHERE is_featured = true",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_product ON product_reviews (product_id, created_at DESC)",
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
	}
	return nil
}

// SeedInitialData seeds an admin account, the promotion settings row and a
// starter catalog. Safe to run repeatedly.
func (m *Migration) SeedInitialData() error {
	if err := m.seedAdminUser(); err != nil {
		return err
	}
	if err := m.seedPromotionSettings(); err != nil {
		return err
	}
	if err := m.seedCatalog(); err != nil {
		return err
	}
	return m.seedDiscountCodes()
}

func (m *Migration) seedAdminUser() error {
	var count int64
	m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Email:        "admin@skatious.com",
		PasswordHash: string(hash),
		FirstName:    "Store",
		LastName:     "Admin",
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Seeded admin user admin@skatious.com")
	return nil
}

func (m *Migration) seedPromotionSettings() error {
	var count int64
	m.db.Model(&promotion.SpecialDiscountSetting{}).Count(&count)
	if count > 0 {
		return nil
	}

	setting := promotion.SpecialDiscountSetting{Active: false}
	return m.db.Create(&setting).Error
}

func (m *Migration) seedCatalog() error {
	var count int64
	m.db.Model(&product.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []product.Category{
		{Name: "T-Shirts", Slug: "t-shirts", Description: "Graphic and plain tees", SortOrder: 1, IsActive: true},
		{Name: "Hoodies", Slug: "hoodies", Description: "Hoodies and sweatshirts", SortOrder: 2, IsActive: true},
		{Name: "Caps", Slug: "caps", Description: "Caps and beanies", SortOrder: 3, IsActive: true},
	}
	if err := m.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := []product.Product{
		{
			SKU:         "SKT-TEE-001",
			Name:        "Classic Logo Tee",
			Slug:        "classic-logo-tee",
			Description: "Heavyweight cotton tee with the SKATIOUS logo",
			Price:       79900,
			CategoryID:  categories[0].ID,
			Sizes:       "S,M,L,XL",
			Quantity:    100,
			IsActive:    true,
			IsFeatured:  true,
		},
		{
			SKU:         "SKT-HOOD-001",
			Name:        "Midnight Hoodie",
			Slug:        "midnight-hoodie",
			Description: "Fleece-lined hoodie in black",
			Price:       199900,
			CategoryID:  categories[1].ID,
			Sizes:       "M,L,XL",
			Quantity:    50,
			IsActive:    true,
			IsFeatured:  true,
		},
		{
			SKU:         "SKT-CAP-001",
			Name:        "Snapback Cap",
			Slug:        "snapback-cap",
			Description: "Embroidered snapback, one size",
			Price:       59900,
			CategoryID:  categories[2].ID,
			Sizes:       "OS",
			Quantity:    75,
			IsActive:    true,
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d categories and %d products", len(categories), len(products))
	return nil
}

func (m *Migration) seedDiscountCodes() error {
	var count int64
	m.db.Model(&discount.DiscountCode{}).Count(&count)
	if count > 0 {
		return nil
	}

	code := discount.DiscountCode{
		Code:       "WELCOME10",
		Percentage: 10,
		IsActive:   true,
	}
	return m.db.Create(&code).Error
}

// GetTableInfo logs row counts for the main tables
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "categories", "products", "cart_items", "orders", "discount_codes", "user_dice_rolls"}
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			continue
		}
		log.Printf("table %s: %d rows", table, count)
	}
}
