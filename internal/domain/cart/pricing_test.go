// internal/domain/cart/pricing_test.go
package cart

import "testing"

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []PricedItem
		want  int64
	}{
		{"empty cart", nil, 0},
		{"single item", []PricedItem{{UnitPrice: 49900, Quantity: 1}}, 49900},
		{"multiple quantities", []PricedItem{{UnitPrice: 49900, Quantity: 3}}, 149700},
		{"mixed items", []PricedItem{{UnitPrice: 49900, Quantity: 2}, {UnitPrice: 129900, Quantity: 1}}, 229700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtotal(tt.items); got != tt.want {
				t.Errorf("Subtotal() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDiscountAmountBounds(t *testing.T) {
	subtotal := int64(100000)

	for pct := 0; pct <= 100; pct++ {
		amount := DiscountAmount(subtotal, pct)
		if amount < 0 || amount > subtotal {
			t.Fatalf("discount amount %d out of bounds for pct %d", amount, pct)
		}
	}
}

func TestClampPercentage(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{12, 12},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		if got := ClampPercentage(tt.in); got != tt.want {
			t.Errorf("ClampPercentage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestComputeTotalsExample(t *testing.T) {
	// ₹1000.00 cart with a 12% discount comes to ₹880.00.
	items := []PricedItem{{UnitPrice: 100000, Quantity: 1}}

	totals := ComputeTotals(items, "DICE12", 12)

	if totals.Subtotal != 100000 {
		t.Errorf("subtotal = %d, want 100000", totals.Subtotal)
	}
	if totals.DiscountAmount != 12000 {
		t.Errorf("discount amount = %d, want 12000", totals.DiscountAmount)
	}
	if totals.TotalAmount != 88000 {
		t.Errorf("total = %d, want 88000", totals.TotalAmount)
	}
	if totals.DiscountCode != "DICE12" {
		t.Errorf("discount code = %q, want DICE12", totals.DiscountCode)
	}
}

func TestComputeTotalsIdentity(t *testing.T) {
	items := []PricedItem{
		{UnitPrice: 74900, Quantity: 2},
		{UnitPrice: 19900, Quantity: 5},
	}

	for pct := 0; pct <= 100; pct++ {
		totals := ComputeTotals(items, "", pct)

		if totals.TotalAmount != totals.Subtotal-totals.DiscountAmount {
			t.Fatalf("pct %d: total %d != subtotal %d - discount %d",
				pct, totals.TotalAmount, totals.Subtotal, totals.DiscountAmount)
		}
		if totals.TotalAmount > totals.Subtotal || totals.TotalAmount < 0 {
			t.Fatalf("pct %d: total %d out of [0, subtotal] range", pct, totals.TotalAmount)
		}
	}
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	items := []PricedItem{{UnitPrice: 49900, Quantity: 2}}

	totals := ComputeTotals(items, "", 0)

	if totals.DiscountAmount != 0 {
		t.Errorf("discount amount = %d, want 0", totals.DiscountAmount)
	}
	if totals.TotalAmount != totals.Subtotal {
		t.Errorf("total = %d, want subtotal %d", totals.TotalAmount, totals.Subtotal)
	}
	if totals.ItemCount != 1 || totals.TotalQuantity != 2 {
		t.Errorf("counts = (%d, %d), want (1, 2)", totals.ItemCount, totals.TotalQuantity)
	}
}
