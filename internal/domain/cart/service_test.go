// internal/domain/cart/service_test.go
package cart

import (
	"strings"
	"testing"
	"time"
)

type stubUserItemStore struct {
	items []CartItem
}

func (s *stubUserItemStore) ListByUser(userID uint) ([]CartItem, error) {
	var out []CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubUserItemStore) FindByIdentity(userID, productID uint, size string) (*CartItem, error) {
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ProductID == productID && s.items[i].Size == size {
			copied := s.items[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUserItemStore) Create(item *CartItem) error {
	s.items = append(s.items, *item)
	return nil
}

func (s *stubUserItemStore) UpdateQuantity(userID, productID uint, size string, quantity int) (int64, error) {
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ProductID == productID && s.items[i].Size == size {
			s.items[i].Quantity = quantity
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubUserItemStore) DeleteByIdentity(userID, productID uint, size string) error {
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ProductID == productID && s.items[i].Size == size {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *stubUserItemStore) DeleteAllByUser(userID uint) error {
	var kept []CartItem
	for _, item := range s.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

func TestAddToUserCartMergesSameIdentity(t *testing.T) {
	store := &stubUserItemStore{}
	svc := &Service{userItems: store}

	if err := svc.addToUserCart(7, 10, "M", 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.addToUserCart(7, 10, "M", 3); err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("rows = %d, want exactly one for the same (user, product, size)", len(store.items))
	}
	if store.items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", store.items[0].Quantity)
	}
}

func TestAddToUserCartDistinctIdentitiesCreateRows(t *testing.T) {
	store := &stubUserItemStore{}
	svc := &Service{userItems: store}

	if err := svc.addToUserCart(7, 10, "M", 1); err != nil {
		t.Fatalf("add M: %v", err)
	}
	if err := svc.addToUserCart(7, 10, "L", 1); err != nil {
		t.Fatalf("add L: %v", err)
	}
	if err := svc.addToUserCart(8, 10, "M", 1); err != nil {
		t.Fatalf("add for other user: %v", err)
	}

	if len(store.items) != 3 {
		t.Fatalf("rows = %d, want 3 for distinct identities", len(store.items))
	}
}

func TestSetUserItemQuantityUpdatesExisting(t *testing.T) {
	store := &stubUserItemStore{}
	svc := &Service{userItems: store}

	if err := svc.addToUserCart(7, 10, "M", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.setUserItemQuantity(7, 10, "M", 9); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	if store.items[0].Quantity != 9 {
		t.Errorf("quantity = %d, want 9", store.items[0].Quantity)
	}
}

func TestSetUserItemQuantityMissingIdentity(t *testing.T) {
	store := &stubUserItemStore{}
	svc := &Service{userItems: store}

	if err := svc.addToUserCart(7, 10, "M", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	err := svc.setUserItemQuantity(7, 10, "XL", 1)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want item-not-found for a size not in the cart", err)
	}
	if store.items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want untouched 2", store.items[0].Quantity)
	}
}

func TestSetUserItemQuantityZeroDeletes(t *testing.T) {
	store := &stubUserItemStore{}
	svc := &Service{userItems: store}

	if err := svc.addToUserCart(7, 10, "M", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.setUserItemQuantity(7, 10, "M", 0); err != nil {
		t.Fatalf("set quantity 0: %v", err)
	}

	if len(store.items) != 0 {
		t.Errorf("rows = %d, want empty cart after quantity 0", len(store.items))
	}
}

func TestAddSessionItemIncrementsExistingIdentity(t *testing.T) {
	c := &SessionCart{SessionID: "sess-1"}
	now := time.Now().UTC()

	addSessionItem(c, 10, "M", 2, now)
	addSessionItem(c, 10, "M", 3, now)

	if len(c.Items) != 1 {
		t.Fatalf("items = %d, want exactly one row for the same (product, size)", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", c.Items[0].Quantity)
	}
}

func TestAddSessionItemDifferentSizeCreatesNewRow(t *testing.T) {
	c := &SessionCart{SessionID: "sess-1"}
	now := time.Now().UTC()

	addSessionItem(c, 10, "M", 1, now)
	addSessionItem(c, 10, "L", 1, now)

	if len(c.Items) != 2 {
		t.Fatalf("items = %d, want 2 rows for distinct sizes", len(c.Items))
	}
}

func TestSetSessionItemQuantityZeroDeletes(t *testing.T) {
	c := &SessionCart{SessionID: "sess-1"}
	now := time.Now().UTC()
	addSessionItem(c, 10, "M", 2, now)

	if !setSessionItemQuantity(c, 10, "M", 0) {
		t.Fatal("expected item to be found")
	}

	if len(c.Items) != 0 {
		t.Errorf("items = %d, want empty cart after quantity 0", len(c.Items))
	}
}

func TestSetSessionItemQuantityUpdates(t *testing.T) {
	c := &SessionCart{SessionID: "sess-1"}
	now := time.Now().UTC()
	addSessionItem(c, 10, "M", 2, now)

	if !setSessionItemQuantity(c, 10, "M", 7) {
		t.Fatal("expected item to be found")
	}

	if c.Items[0].Quantity != 7 {
		t.Errorf("quantity = %d, want 7", c.Items[0].Quantity)
	}
}

func TestSetSessionItemQuantityMissingIdentity(t *testing.T) {
	c := &SessionCart{SessionID: "sess-1"}
	now := time.Now().UTC()
	addSessionItem(c, 10, "M", 2, now)

	if setSessionItemQuantity(c, 10, "XL", 1) {
		t.Error("expected miss for a size not in the cart")
	}
	if setSessionItemQuantity(c, 99, "M", 1) {
		t.Error("expected miss for a product not in the cart")
	}
}
