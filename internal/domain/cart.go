package domain

import "github.com/shopspring/decimal"

// --- Cart Entities ---

type CartItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is quantity * unit price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is the in-memory cart. TotalItems and TotalPrice are derived
// from Items and are only ever written by the cart reducer.
type CartState struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// EmptyCart returns the canonical empty state.
func EmptyCart() CartState {
	return CartState{
		Items:      []CartItem{},
		TotalItems: 0,
		TotalPrice: decimal.Zero,
	}
}

// Clone returns a deep copy so callers cannot mutate the store's slice.
func (s CartState) Clone() CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{
		Items:      items,
		TotalItems: s.TotalItems,
		TotalPrice: s.TotalPrice,
	}
}

// FindItem returns the index of the item with the given synthetic id, or -1.
func (s CartState) FindItem(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
