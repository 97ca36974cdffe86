// internal/domain/payment/razorpay.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// Service creates payment orders with the Razorpay gateway
type Service struct {
	db         *gorm.DB
	config     *config.Config
	httpClient *http.Client
}

// NewService creates a new payment service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateOrderRequest represents a gateway order creation request
type CreateOrderRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency" binding:"required"`
	Receipt  string `json:"receipt" binding:"required"`
}

// CreateOrderResponse represents the gateway's order object
type CreateOrderResponse struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates an order with Razorpay. Amount is in the smallest
// currency unit (paise for INR), which is what the gateway expects.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Razorpay.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.SetBasicAuth(s.config.Razorpay.KeyID, s.config.Razorpay.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var gatewayErr struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&gatewayErr)
		if gatewayErr.Error.Description != "" {
			return nil, fmt.Errorf("payment gateway error: %s", gatewayErr.Error.Description)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var gatewayOrder CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&gatewayOrder); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &gatewayOrder, nil
}

// CreateForOrder creates a gateway order for a placed order and records the
// payment attempt. The order moves to payment_processing.
func (s *Service) CreateForOrder(ctx context.Context, userID, orderID uint) (*CreateOrderResponse, error) {
	var ord order.Order
	err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&ord).Error
	if err != nil {
		return nil, fmt.Errorf("order not found")
	}

	if ord.PaymentStatus == order.PaymentStatusPaid {
		return nil, fmt.Errorf("order is already paid")
	}

	gatewayOrder, err := s.CreateOrder(ctx, &CreateOrderRequest{
		Amount:   ord.TotalAmount,
		Currency: ord.Currency,
		Receipt:  ord.OrderNumber,
	})
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		record := order.Payment{
			OrderID:           ord.ID,
			PaymentProviderID: gatewayOrder.ID,
			Amount:            gatewayOrder.Amount,
			Currency:          gatewayOrder.Currency,
			Status:            order.PaymentStatusPending,
			Gateway:           "razorpay",
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return tx.Model(&order.Order{}).
			Where("id = ?", ord.ID).
			Update("status", order.StatusPaymentProcessing).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return gatewayOrder, nil
}
