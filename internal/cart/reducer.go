// Package cart holds the in-memory shopping cart: a pure reducer over
// domain.CartState and a Store that serialises dispatches to it.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petclinic-client/internal/domain"
)

// MinQuantity is the floor for UPDATE_ITEM_QUANTITY. ADD_ITEM adds its
// quantity as given; callers validate it before dispatch.
const MinQuantity = 1

// Action is one of AddItem, UpdateItemQuantity, RemoveItem, ClearCart.
type Action interface {
	actionName() string
}

type AddItem struct {
	Product  domain.Product
	Quantity int
}

type UpdateItemQuantity struct {
	ID       string
	Quantity int
}

type RemoveItem struct {
	ID string
}

type ClearCart struct{}

func (AddItem) actionName() string            { return "ADD_ITEM" }
func (UpdateItemQuantity) actionName() string { return "UPDATE_ITEM_QUANTITY" }
func (RemoveItem) actionName() string         { return "REMOVE_ITEM" }
func (ClearCart) actionName() string          { return "CLEAR_CART" }

// ActionName is the wire-style name of an action, used in logs.
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}

// IDFunc generates synthetic cart item ids.
type IDFunc func() string

// NewUUID is the default IDFunc.
func NewUUID() string {
	return uuid.NewString()
}

// Reducer maps (state, action) to a new state. It never mutates its input
// and never fails: unknown ids are no-ops and quantities are floored.
type Reducer struct {
	newID IDFunc
}

func NewReducer(newID IDFunc) *Reducer {
	if newID == nil {
		newID = NewUUID
	}
	return &Reducer{newID: newID}
}

func (r *Reducer) Reduce(state domain.CartState, action Action) domain.CartState {
	switch a := action.(type) {
	case AddItem:
		return r.addItem(state, a)
	case UpdateItemQuantity:
		return updateItemQuantity(state, a)
	case RemoveItem:
		return removeItem(state, a)
	case ClearCart:
		return domain.EmptyCart()
	default:
		return state
	}
}

func (r *Reducer) addItem(state domain.CartState, a AddItem) domain.CartState {
	qty := a.Quantity
	next := state.Clone()
	key := a.Product.VariantKey()

	for i, item := range next.Items {
		if item.Product.VariantKey() == key {
			next.Items[i].Quantity += qty
			return withTotals(next)
		}
	}

	next.Items = append(next.Items, domain.CartItem{
		ID:       r.newID(),
		Product:  a.Product,
		Quantity: qty,
	})
	return withTotals(next)
}

func updateItemQuantity(state domain.CartState, a UpdateItemQuantity) domain.CartState {
	idx := state.FindItem(a.ID)
	if idx < 0 {
		return state
	}
	next := state.Clone()
	next.Items[idx].Quantity = floorQuantity(a.Quantity)
	return withTotals(next)
}

func removeItem(state domain.CartState, a RemoveItem) domain.CartState {
	idx := state.FindItem(a.ID)
	if idx < 0 {
		return state
	}
	items := make([]domain.CartItem, 0, len(state.Items)-1)
	items = append(items, state.Items[:idx]...)
	items = append(items, state.Items[idx+1:]...)
	return withTotals(domain.CartState{Items: items})
}

func floorQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}

// withTotals recomputes the derived fields from Items.
func withTotals(state domain.CartState) domain.CartState {
	totalItems := 0
	totalPrice := decimal.Zero
	for _, item := range state.Items {
		totalItems += item.Quantity
		totalPrice = totalPrice.Add(item.LineTotal())
	}
	state.TotalItems = totalItems
	state.TotalPrice = totalPrice
	return state
}

// Recompute is exported for callers that build a state by hand (tests,
// restoring a snapshot).
func Recompute(state domain.CartState) domain.CartState {
	return withTotals(state.Clone())
}
