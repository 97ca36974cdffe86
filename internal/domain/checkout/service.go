// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/cart"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"github.com/skatious/storefront-backend/internal/domain/order"
	"github.com/skatious/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles the checkout flow: it reads the cart and discount state
// once, snapshots everything into an immutable order, and clears the cart.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	cartService *cart.Service
	discounts   *discount.Service
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, redisClient *redis.Client, cartService *cart.Service, discounts *discount.Service, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		cartService: cartService,
		discounts:   discounts,
	}
}

// PlaceOrderRequest represents an order submission
type PlaceOrderRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country"`
	Phone        string `json:"phone" binding:"required"`
	Notes        string `json:"notes"`
}

// PlaceOrder creates an order from the user's cart. The active discount
// state is read once here and written into the order record; later changes
// to the cart's discount have no effect on the created order.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderRequest) (*order.Order, error) {
	cartResponse, err := s.cartService.GetCart(ctx, &userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cartResponse.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	totals := cartResponse.Totals

	ord := order.Order{
		UserID:             userID,
		Email:              req.Email,
		Status:             order.StatusPending,
		PaymentStatus:      order.PaymentStatusPending,
		SubtotalAmount:     totals.Subtotal,
		DiscountCode:       totals.DiscountCode,
		DiscountPercentage: totals.DiscountPercentage,
		DiscountAmount:     totals.DiscountAmount,
		TotalAmount:        totals.TotalAmount,
		Currency:           s.config.Razorpay.Currency,
		Notes:              req.Notes,
		ShippingAddress: order.Address{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			State:        req.State,
			PostalCode:   req.PostalCode,
			Country:      defaultCountry(req.Country),
			Phone:        req.Phone,
		},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ord).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		ord.OrderNumber = order.GenerateOrderNumber(ord.ID, time.Now())
		if err := tx.Model(&ord).Update("order_number", ord.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		for _, item := range cartResponse.Items {
			if item.Product == nil {
				return fmt.Errorf("product %d no longer available", item.ProductID)
			}

			orderItem := order.OrderItem{
				OrderID:    ord.ID,
				ProductID:  item.ProductID,
				SKU:        item.Product.SKU,
				Name:       item.Product.Name,
				Size:       item.Size,
				Quantity:   item.Quantity,
				Price:      item.UnitPrice,
				TotalPrice: item.LineTotal,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			ord.Items = append(ord.Items, orderItem)

			// Reduce stock for the purchased quantity
			if err := tx.Model(&product.Product{}).
				Where("id = ?", item.ProductID).
				Update("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to adjust stock: %w", err)
			}
		}

		history := order.StatusHistory{
			OrderID:   ord.ID,
			Status:    order.StatusPending,
			Comment:   "Order placed",
			CreatedBy: userID,
			CreatedAt: time.Now().UTC(),
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	// Cart and discount state are consumed by the order
	if err := s.cartService.ClearCart(ctx, &userID, ""); err != nil {
		return nil, fmt.Errorf("order %s created but cart clear failed: %w", ord.OrderNumber, err)
	}

	return &ord, nil
}

func defaultCountry(country string) string {
	if country == "" {
		return "IN"
	}
	return country
}
