// internal/domain/discount/service.go
package discount

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/skatious/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrInvalidCode is returned when an entered code has no active match in the
// catalog. The caller's existing discount state is left untouched.
var ErrInvalidCode = fmt.Errorf("invalid or expired discount code")

// StateStore persists the active discount per owner so it survives reloads.
type StateStore interface {
	Load(ctx context.Context, ownerKey string) (State, error)
	Save(ctx context.Context, ownerKey string, state State) error
	Clear(ctx context.Context, ownerKey string) error
}

// CodeCatalog looks up admin-managed discount codes.
type CodeCatalog interface {
	FindActive(ctx context.Context, code string) (*DiscountCode, error)
}

// Service handles discount state and code validation
type Service struct {
	db      *gorm.DB
	store   StateStore
	catalog CodeCatalog
	config  *config.Config
}

// NewService creates a new discount service backed by Redis state and the
// Postgres code catalog.
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		store:   &redisStateStore{client: redisClient},
		catalog: &gormCodeCatalog{db: db},
		config:  cfg,
	}
}

// OwnerKey derives the storage key for a cart owner identity. Exactly one of
// userID and sessionID is meaningful; the authenticated identity wins.
func OwnerKey(userID *uint, sessionID string) string {
	if userID != nil {
		return fmt.Sprintf("discount:user:%d", *userID)
	}
	return fmt.Sprintf("discount:session:%s", sessionID)
}

// Get returns the active discount for the owner, or the zero state
func (s *Service) Get(ctx context.Context, userID *uint, sessionID string) (State, error) {
	return s.store.Load(ctx, OwnerKey(userID, sessionID))
}

// Apply sets the active discount unconditionally. Last applied wins; there is
// no stacking. Percentage range is the caller's responsibility: catalog codes
// and dice rolls are both bounded by construction.
func (s *Service) Apply(ctx context.Context, userID *uint, sessionID, code string, percentage int) error {
	state := State{Code: code, Percentage: percentage}
	return s.store.Save(ctx, OwnerKey(userID, sessionID), state)
}

// ApplyCode validates an entered code against the catalog and applies it.
// An unknown or inactive code returns ErrInvalidCode and leaves the existing
// state untouched.
func (s *Service) ApplyCode(ctx context.Context, userID *uint, sessionID, code string) (State, error) {
	dc, err := s.catalog.FindActive(ctx, code)
	if err != nil {
		return State{}, err
	}
	if dc == nil {
		return State{}, ErrInvalidCode
	}

	state := State{Code: dc.Code, Percentage: dc.Percentage}
	if err := s.store.Save(ctx, OwnerKey(userID, sessionID), state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Remove clears the active discount back to the absent state
func (s *Service) Remove(ctx context.Context, userID *uint, sessionID string) error {
	return s.store.Clear(ctx, OwnerKey(userID, sessionID))
}

// Admin catalog management

// CreateCodeRequest represents an admin request to create a discount code
type CreateCodeRequest struct {
	Code       string `json:"code" binding:"required"`
	Percentage int    `json:"percentage" binding:"required,min=1,max=100"`
	IsActive   *bool  `json:"is_active"`
}

// UpdateCodeRequest represents an admin request to update a discount code
type UpdateCodeRequest struct {
	Percentage *int  `json:"percentage" binding:"omitempty,min=1,max=100"`
	IsActive   *bool `json:"is_active"`
}

// ListCodes returns all discount codes for the admin back-office
func (s *Service) ListCodes() ([]DiscountCode, error) {
	var codes []DiscountCode
	if err := s.db.Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list discount codes: %w", err)
	}
	return codes, nil
}

// CreateCode creates a new discount code
func (s *Service) CreateCode(req *CreateCodeRequest) (*DiscountCode, error) {
	code := DiscountCode{
		Code:       req.Code,
		Percentage: req.Percentage,
		IsActive:   true,
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}

	if err := s.db.Create(&code).Error; err != nil {
		return nil, fmt.Errorf("failed to create discount code: %w", err)
	}
	return &code, nil
}

// UpdateCode updates percentage or active flag of a discount code
func (s *Service) UpdateCode(id uint, req *UpdateCodeRequest) (*DiscountCode, error) {
	var code DiscountCode
	if err := s.db.First(&code, id).Error; err != nil {
		return nil, fmt.Errorf("discount code not found")
	}

	if req.Percentage != nil {
		code.Percentage = *req.Percentage
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}

	if err := s.db.Save(&code).Error; err != nil {
		return nil, fmt.Errorf("failed to update discount code: %w", err)
	}
	return &code, nil
}

// DeleteCode removes a discount code from the catalog
func (s *Service) DeleteCode(id uint) error {
	return s.db.Delete(&DiscountCode{}, id).Error
}

// redisStateStore persists discount state in Redis with no expiry so it
// survives page reloads.
type redisStateStore struct {
	client *redis.Client
}

func (r *redisStateStore) Load(ctx context.Context, ownerKey string) (State, error) {
	data, err := r.client.Get(ctx, ownerKey).Result()
	if err == redis.Nil {
		return State{}, nil
	} else if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return State{}, err
	}
	return state, nil
}

func (r *redisStateStore) Save(ctx context.Context, ownerKey string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, ownerKey, data, 0).Err()
}

func (r *redisStateStore) Clear(ctx context.Context, ownerKey string) error {
	return r.client.Del(ctx, ownerKey).Err()
}

// gormCodeCatalog reads discount codes from Postgres
type gormCodeCatalog struct {
	db *gorm.DB
}

func (g *gormCodeCatalog) FindActive(ctx context.Context, code string) (*DiscountCode, error) {
	var dc DiscountCode
	result := g.db.WithContext(ctx).Where("code = ? AND is_active = ?", code, true).First(&dc)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	} else if result.Error != nil {
		return nil, result.Error
	}
	return &dc, nil
}
