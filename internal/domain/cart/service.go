// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// UserItemStore persists authenticated cart line items, keyed by the
// (user, product, size) identity.
type UserItemStore interface {
	ListByUser(userID uint) ([]CartItem, error)
	FindByIdentity(userID, productID uint, size string) (*CartItem, error)
	Create(item *CartItem) error
	// UpdateQuantity returns the number of rows matched so callers can
	// distinguish an update from a miss.
	UpdateQuantity(userID, productID uint, size string, quantity int) (int64, error)
	DeleteByIdentity(userID, productID uint, size string) error
	DeleteAllByUser(userID uint) error
}

// Service handles cart business logic. Authenticated carts live in Postgres,
// anonymous carts in Redis keyed by a per-browser session identifier.
type Service struct {
	db          *gorm.DB
	userItems   UserItemStore
	redisClient *redis.Client
	discounts   *discount.Service
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, discounts *discount.Service, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		userItems:   &gormUserItemStore{db: db},
		redisClient: redisClient,
		discounts:   discounts,
		config:      cfg,
	}
}

// ItemResponse represents a cart line item with current product details
type ItemResponse struct {
	ProductID uint             `json:"product_id"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity"`
	UnitPrice int64            `json:"unit_price"` // Current catalog price in paise
	LineTotal int64            `json:"line_total"`
	Product   *product.Product `json:"product,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

// Response represents a shopping cart with items and totals
type Response struct {
	SessionID string         `json:"session_id,omitempty"`
	UserID    *uint          `json:"user_id,omitempty"`
	Items     []ItemResponse `json:"items"`
	Totals    Totals         `json:"totals"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents update cart item request. Quantity zero (or
// below) removes the line item.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart retrieves the cart for a user or anonymous session. Every read
// loads product details fresh so totals reflect current catalog prices, and
// folds in the owner's active discount state.
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*Response, error) {
	var items []ItemResponse
	var updatedAt time.Time

	if userID != nil {
		dbItems, err := s.userItems.ListByUser(*userID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
		}

		items = make([]ItemResponse, len(dbItems))
		for i, item := range dbItems {
			items[i] = ItemResponse{
				ProductID: item.ProductID,
				Size:      item.Size,
				Quantity:  item.Quantity,
				AddedAt:   item.CreatedAt,
			}
			if item.UpdatedAt.After(updatedAt) {
				updatedAt = item.UpdatedAt
			}
		}
	} else {
		sessionCart, err := s.getSessionCart(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		items = make([]ItemResponse, len(sessionCart.Items))
		for i, item := range sessionCart.Items {
			items[i] = ItemResponse{
				ProductID: item.ProductID,
				Size:      item.Size,
				Quantity:  item.Quantity,
				AddedAt:   item.AddedAt,
			}
		}
		updatedAt = sessionCart.UpdatedAt
	}

	if err := s.loadProductDetails(items); err != nil {
		return nil, err
	}

	state, err := s.discounts.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read discount state: %w", err)
	}

	priced := make([]PricedItem, len(items))
	for i, item := range items {
		priced[i] = PricedItem{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}

	return &Response{
		SessionID: sessionID,
		UserID:    userID,
		Items:     items,
		Totals:    ComputeTotals(priced, state.Code, state.Percentage),
		UpdatedAt: updatedAt,
	}, nil
}

// AddToCart adds an item to the cart. If a line item with the same
// (owner, product, size) identity exists, its quantity is incremented
// instead of creating a duplicate row. The updated cart is re-read from the
// store of record before returning.
func (s *Service) AddToCart(ctx context.Context, userID *uint, sessionID string, req *AddToCartRequest) (*Response, error) {
	var prod product.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	if !prod.HasSize(req.Size) {
		return nil, fmt.Errorf("size %s is not offered for this product", req.Size)
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, req.ProductID, req.Size, req.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.addToSessionCart(ctx, sessionID, req.ProductID, req.Size, req.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// SetQuantity updates the quantity of a cart line item. Quantity zero or
// below deletes the line item.
func (s *Service) SetQuantity(ctx context.Context, userID *uint, sessionID string, productID uint, size string, quantity int) (*Response, error) {
	if userID != nil {
		if err := s.setUserItemQuantity(*userID, productID, size, quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.setSessionItemQuantity(ctx, sessionID, productID, size, quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// RemoveFromCart removes a line item from the cart
func (s *Service) RemoveFromCart(ctx context.Context, userID *uint, sessionID string, productID uint, size string) (*Response, error) {
	return s.SetQuantity(ctx, userID, sessionID, productID, size, 0)
}

// ClearCart removes all line items for the current owner identity and
// clears the active discount state. Single-item removal never touches the
// discount; only a full clear does.
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		if err := s.userItems.DeleteAllByUser(*userID); err != nil {
			return err
		}
	} else {
		cartKey := sessionCartKey(sessionID)
		if err := s.redisClient.Del(ctx, cartKey).Err(); err != nil {
			return err
		}
	}

	return s.discounts.Remove(ctx, userID, sessionID)
}

// ItemCount returns the total quantity across the cart
func (s *Service) ItemCount(ctx context.Context, userID *uint, sessionID string) (int, error) {
	cartResponse, err := s.GetCart(ctx, userID, sessionID)
	if err != nil {
		return 0, nil // Empty cart when the store is unreachable
	}

	total := 0
	for _, item := range cartResponse.Items {
		total += item.Quantity
	}
	return total, nil
}

// MergeSessionCartToUser merges an anonymous session cart into the user's
// cart on login, by (product, size) identity, summing quantities. The
// session cart is dropped afterwards.
func (s *Service) MergeSessionCartToUser(ctx context.Context, userID uint, sessionID string) error {
	sessionCart, err := s.getSessionCart(ctx, sessionID)
	if err != nil || len(sessionCart.Items) == 0 {
		return nil // Nothing to merge
	}

	for _, item := range sessionCart.Items {
		if err := s.addToUserCart(userID, item.ProductID, item.Size, item.Quantity); err != nil {
			return fmt.Errorf("failed to merge cart item: %w", err)
		}
	}

	return s.redisClient.Del(ctx, sessionCartKey(sessionID)).Err()
}

// Private helpers

func (s *Service) addToUserCart(userID, productID uint, size string, quantity int) error {
	existing, err := s.userItems.FindByIdentity(userID, productID, size)
	if err != nil {
		return err
	}

	if existing == nil {
		item := CartItem{
			UserID:    userID,
			ProductID: productID,
			Size:      size,
			Quantity:  quantity,
		}
		return s.userItems.Create(&item)
	}

	_, err = s.userItems.UpdateQuantity(userID, productID, size, existing.Quantity+quantity)
	return err
}

func (s *Service) setUserItemQuantity(userID, productID uint, size string, quantity int) error {
	if quantity <= 0 {
		return s.userItems.DeleteByIdentity(userID, productID, size)
	}

	matched, err := s.userItems.UpdateQuantity(userID, productID, size, quantity)
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("item not found in cart")
	}
	return nil
}

func (s *Service) addToSessionCart(ctx context.Context, sessionID string, productID uint, size string, quantity int) error {
	sessionCart, err := s.getSessionCart(ctx, sessionID)
	if err != nil {
		return err
	}

	addSessionItem(sessionCart, productID, size, quantity, time.Now().UTC())
	return s.saveSessionCart(ctx, sessionID, sessionCart)
}

func (s *Service) setSessionItemQuantity(ctx context.Context, sessionID string, productID uint, size string, quantity int) error {
	sessionCart, err := s.getSessionCart(ctx, sessionID)
	if err != nil {
		return err
	}

	if !setSessionItemQuantity(sessionCart, productID, size, quantity) {
		return fmt.Errorf("item not found in cart")
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveSessionCart(ctx, sessionID, sessionCart)
}

func (s *Service) getSessionCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for anonymous cart")
	}

	data, err := s.redisClient.Get(ctx, sessionCartKey(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, err
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		return nil, err
	}
	return &sessionCart, nil
}

func (s *Service) saveSessionCart(ctx context.Context, sessionID string, sessionCart *SessionCart) error {
	data, err := json.Marshal(sessionCart)
	if err != nil {
		return err
	}

	// Anonymous carts expire after 30 days of inactivity
	return s.redisClient.Set(ctx, sessionCartKey(sessionID), data, 30*24*time.Hour).Err()
}

func (s *Service) loadProductDetails(items []ItemResponse) error {
	for i := range items {
		var prod product.Product
		err := s.db.Preload("Category").Preload("Images").
			Where("id = ?", items[i].ProductID).First(&prod).Error
		if err != nil {
			continue // Skip items whose product vanished from the catalog
		}
		items[i].Product = &prod
		items[i].UnitPrice = prod.Price
		items[i].LineTotal = prod.Price * int64(items[i].Quantity)
	}
	return nil
}

func sessionCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// gormUserItemStore persists authenticated cart items in Postgres
type gormUserItemStore struct {
	db *gorm.DB
}

func (g *gormUserItemStore) ListByUser(userID uint) ([]CartItem, error) {
	var items []CartItem
	err := g.db.Where("user_id = ?", userID).Order("created_at").Find(&items).Error
	return items, err
}

func (g *gormUserItemStore) FindByIdentity(userID, productID uint, size string) (*CartItem, error) {
	var item CartItem
	result := g.db.Where("user_id = ? AND product_id = ? AND size = ?",
		userID, productID, size).First(&item)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	} else if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (g *gormUserItemStore) Create(item *CartItem) error {
	return g.db.Create(item).Error
}

func (g *gormUserItemStore) UpdateQuantity(userID, productID uint, size string, quantity int) (int64, error) {
	result := g.db.Model(&CartItem{}).
		Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (g *gormUserItemStore) DeleteByIdentity(userID, productID uint, size string) error {
	return g.db.Where("user_id = ? AND product_id = ? AND size = ?",
		userID, productID, size).Delete(&CartItem{}).Error
}

func (g *gormUserItemStore) DeleteAllByUser(userID uint) error {
	return g.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}

// addSessionItem merges a new (product, size) quantity into a session cart,
// incrementing the existing line item when the identity already exists.
func addSessionItem(c *SessionCart, productID uint, size string, quantity int, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = now
			return
		}
	}

	c.Items = append(c.Items, SessionCartItem{
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
		AddedAt:   now,
	})
	c.UpdatedAt = now
}

// setSessionItemQuantity updates or removes a line item by identity.
// Returns false when no matching item exists.
func setSessionItemQuantity(c *SessionCart, productID uint, size string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}
