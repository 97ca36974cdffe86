// internal/domain/payment/razorpay_test.go
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skatious/storefront-backend/internal/config"
)

func newTestService(baseURL string) *Service {
	return &Service{
		config: &config.Config{
			Razorpay: config.RazorpayConfig{
				KeyID:     "rzp_test_key",
				KeySecret: "rzp_test_secret",
				BaseURL:   baseURL,
				Currency:  "INR",
			},
		},
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreateOrderSendsGatewayRequest(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuthOK bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		gotAuthOK = ok && user == "rzp_test_key" && pass == "rzp_test_secret"

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		json.NewEncoder(w).Encode(CreateOrderResponse{
			ID:       "order_ABC123",
			Entity:   "order",
			Amount:   88000,
			Currency: "INR",
			Receipt:  "SKT-20250715-00042",
			Status:   "created",
		})
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   88000,
		Currency: "INR",
		Receipt:  "SKT-20250715-00042",
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !gotAuthOK {
		t.Error("expected basic auth with configured key and secret")
	}
	if gotBody["amount"] != float64(88000) {
		t.Errorf("amount = %v, want 88000", gotBody["amount"])
	}
	if gotBody["currency"] != "INR" {
		t.Errorf("currency = %v, want INR", gotBody["currency"])
	}
	if gotBody["receipt"] != "SKT-20250715-00042" {
		t.Errorf("receipt = %v, want SKT-20250715-00042", gotBody["receipt"])
	}
	if resp.ID != "order_ABC123" {
		t.Errorf("gateway order id = %q, want order_ABC123", resp.ID)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":        "BAD_REQUEST_ERROR",
				"description": "Amount exceeds maximum amount allowed.",
			},
		})
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   1,
		Currency: "INR",
		Receipt:  "SKT-20250715-00001",
	})
	if err == nil {
		t.Fatal("expected error from gateway failure")
	}
}

func TestCreateOrderGatewayUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := newTestService(server.URL)
	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   1000,
		Currency: "INR",
		Receipt:  "SKT-20250715-00002",
	})
	if err == nil {
		t.Fatal("expected error when gateway is unreachable")
	}
}
