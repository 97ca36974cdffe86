// internal/domain/cart/pricing.go
package cart

// PricedItem is a line item paired with its current catalog unit price.
type PricedItem struct {
	UnitPrice int64
	Quantity  int
}

// Subtotal sums unit price times quantity over all line items. Unit prices
// come from the catalog at read time, never from the line item itself.
func Subtotal(items []PricedItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}

// ClampPercentage bounds a discount percentage to [0, 100].
func ClampPercentage(percentage int) int {
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}

// DiscountAmount computes the discount in paise for a given subtotal and
// percentage. Rounding happens only at the display boundary, so integer
// division here is the final word on the stored amount.
func DiscountAmount(subtotal int64, percentage int) int64 {
	return subtotal * int64(ClampPercentage(percentage)) / 100
}

// ComputeTotals derives the full pricing breakdown for a cart. The final
// total is subtotal minus discount and can never go negative.
func ComputeTotals(items []PricedItem, discountCode string, discountPercentage int) Totals {
	totals := Totals{
		ItemCount: len(items),
	}

	for _, item := range items {
		totals.TotalQuantity += item.Quantity
	}

	totals.Subtotal = Subtotal(items)
	totals.DiscountPercentage = ClampPercentage(discountPercentage)
	totals.DiscountCode = discountCode
	totals.DiscountAmount = DiscountAmount(totals.Subtotal, totals.DiscountPercentage)
	totals.TotalAmount = totals.Subtotal - totals.DiscountAmount
	if totals.TotalAmount < 0 {
		totals.TotalAmount = 0
	}

	return totals
}
