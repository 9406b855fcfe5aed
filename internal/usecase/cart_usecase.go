package usecase

import (
	"context"
	"fmt"

	"petclinic-client/internal/cart"
	"petclinic-client/internal/domain"
)

// ProductLookup resolves a product snapshot for the cart.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// CartUsecase puts the shop catalog in front of a cart store. The store is
// injected so each shop session owns its own cart.
type CartUsecase struct {
	store    *cart.Store
	products ProductLookup
}

func NewCartUsecase(store *cart.Store, products ProductLookup) *CartUsecase {
	return &CartUsecase{store: store, products: products}
}

// AddProduct fetches the product and adds a snapshot of it in the chosen
// color and size. Nothing is added when the quantity is not positive or
// the lookup fails.
func (u *CartUsecase) AddProduct(ctx context.Context, productID, color, size string, quantity int) (domain.CartState, error) {
	if quantity < cart.MinQuantity {
		return u.store.State(), fmt.Errorf("%w: quantity must be at least %d", domain.ErrValidation, cart.MinQuantity)
	}
	p, err := u.products.GetProduct(ctx, productID)
	if err != nil {
		return u.store.State(), fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	snapshot := *p
	if color != "" {
		snapshot.Color = color
	}
	if size != "" {
		snapshot.Size = size
	}
	return u.store.AddItem(snapshot, quantity), nil
}

func (u *CartUsecase) UpdateQuantity(itemID string, quantity int) domain.CartState {
	return u.store.UpdateItemQuantity(itemID, quantity)
}

func (u *CartUsecase) Remove(itemID string) domain.CartState {
	return u.store.RemoveItem(itemID)
}

func (u *CartUsecase) Clear() domain.CartState {
	return u.store.Clear()
}

func (u *CartUsecase) State() domain.CartState {
	return u.store.State()
}

// Subscribe forwards to the store.
func (u *CartUsecase) Subscribe(l cart.Listener) func() {
	return u.store.Subscribe(l)
}
