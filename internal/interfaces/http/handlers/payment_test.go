// internal/interfaces/http/handlers/payment_test.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skatious/storefront-backend/internal/config"
)

func newPaymentRouter(t *testing.T, gatewayURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Razorpay: config.RazorpayConfig{
			KeyID:     "rzp_test_key",
			KeySecret: "rzp_test_secret",
			BaseURL:   gatewayURL,
			Currency:  "INR",
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	handler := NewPaymentHandler(nil, logger, cfg)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.POST("/api/v1/payment/orders", handler.CreateOrder)
	return router
}

func TestCreatePaymentOrderSuccess(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_XYZ",
			"entity":   "order",
			"amount":   88000,
			"currency": "INR",
			"receipt":  "SKT-20250715-00042",
			"status":   "created",
		})
	}))
	defer gateway.Close()

	router := newPaymentRouter(t, gateway.URL)

	body := `{"amount": 88000, "currency": "INR", "receipt": "SKT-20250715-00042"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID != "order_XYZ" {
		t.Errorf("gateway order id = %q, want order_XYZ", resp.Data.ID)
	}
}

func TestCreatePaymentOrderMissingFields(t *testing.T) {
	router := newPaymentRouter(t, "http://unused.invalid")

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing receipt", `{"amount": 1000, "currency": "INR"}`},
		{"zero amount", `{"amount": 0, "currency": "INR", "receipt": "r"}`},
		{"not json", `amount=1000`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestCreatePaymentOrderWrongMethod(t *testing.T) {
	router := newPaymentRouter(t, "http://unused.invalid")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/v1/payment/orders", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s status = %d, want 405", method, w.Code)
		}
	}
}

func TestCreatePaymentOrderGatewayFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer gateway.Close()

	router := newPaymentRouter(t, gateway.URL)

	body := `{"amount": 1000, "currency": "INR", "receipt": "SKT-20250715-00001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500; body: %s", w.Code, w.Body.String())
	}
}
